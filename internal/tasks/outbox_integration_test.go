//go:build integration

package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("portfolio"),
		tcpostgres.WithUsername("portfolio"),
		tcpostgres.WithPassword("portfolio"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := services.InitDB(dsn)
	require.NoError(t, err)
	require.NoError(t, services.AutoMigrate(db))
	return db
}

func TestOutboxDeliversThroughWorker(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	email := &stubChannel{name: "email"}
	push := &stubChannel{name: "push", err: errors.New("fcm down")}
	SendContactNotificationTask.notifier = services.NewNotifier(nil, email, push)
	t.Cleanup(func() { SendContactNotificationTask.notifier = nil })

	registry := NewRegistry()
	registry.Register(SendContactNotificationTask.TaskID(), SendContactNotificationTask.HandleExecution)

	sender := &OutboxSender{DB: db, MaxAttempt: 2}
	ack, err := sender.Send(contact.WithClient(ctx, "client-1"), contact.Payload{
		Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "outbox", ack.Via)

	worker := NewWorker(db, registry, time.Minute)
	assert.Equal(t, 1, worker.ProcessDue(ctx))
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, push.calls)

	var rows []models.ScheduledTask
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2, "the failed channel was rescheduled")
	assert.Equal(t, models.ScheduledTaskStatusDone, rows[0].Status)
	assert.Equal(t, models.ScheduledTaskStatusActive, rows[1].Status)
	assert.True(t, rows[1].Due.After(time.Now()))

	var retry SendContactNotificationArgs
	require.NoError(t, decodeArgs(rows[1].Arguments, &retry))
	assert.Equal(t, []string{"push"}, retry.Channels)
	assert.Equal(t, 2, retry.AttemptCount)
	assert.Equal(t, ack.ID, retry.Message.ID)
	assert.Equal(t, "client-1", retry.Message.ClientHash)

	// bring the retry forward; it is the last attempt and fails for good
	require.NoError(t, db.Model(&rows[1]).Update("due", time.Now().Add(-time.Second)).Error)
	assert.Equal(t, 1, worker.ProcessDue(ctx))
	assert.Equal(t, 1, email.calls, "delivered channels are not repeated")
	assert.Equal(t, 2, push.calls, "ErrNoRetry stops immediate retries")

	var final models.ScheduledTask
	require.NoError(t, db.First(&final, rows[1].ID).Error)
	assert.Equal(t, models.ScheduledTaskStatusFailure, final.Status)

	var history []models.ScheduledTaskHistory
	require.NoError(t, db.Order("id").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, models.TaskRunSuccess, history[0].Status)
	assert.Equal(t, models.TaskRunFailure, history[1].Status)
}

func TestWorkerMarksUnknownTasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	task, err := BuildScheduledTask("nobody_handles_this", map[string]string{}, time.Now().Add(-time.Minute), nil, models.ScheduledTaskTypeOneTime, 1)
	require.NoError(t, err)
	require.NoError(t, db.Create(task).Error)

	NewWorker(db, NewRegistry(), time.Minute).ProcessDue(ctx)

	var stored models.ScheduledTask
	require.NoError(t, db.First(&stored, task.ID).Error)
	assert.Equal(t, models.ScheduledTaskStatusFailure, stored.Status)

	var history models.ScheduledTaskHistory
	require.NoError(t, db.Where("scheduled_task_id = ?", task.ID).First(&history).Error)
	assert.Equal(t, models.TaskRunHandlerNotFound, history.Status)
}

func TestPurgeRemovesOldRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	old := time.Now().AddDate(0, 0, -40)

	done, err := BuildScheduledTask(SendContactNotificationTask.TaskID(), map[string]string{"email": "ada@example.com"}, old, nil, models.ScheduledTaskTypeOneTime, 1)
	require.NoError(t, err)
	done.Status = models.ScheduledTaskStatusDone
	require.NoError(t, db.Create(done).Error)
	require.NoError(t, db.Model(done).UpdateColumn("updated_at", old).Error)

	pending, err := BuildScheduledTask(LogInfoTask.TaskID(), map[string]string{}, old, nil, models.ScheduledTaskTypeOneTime, 1)
	require.NoError(t, err)
	require.NoError(t, db.Create(pending).Error)
	require.NoError(t, db.Model(pending).UpdateColumn("updated_at", old).Error)

	require.NoError(t, db.Create(&models.ScheduledTaskHistory{ScheduledTaskID: done.ID, RunAt: old}).Error)
	require.NoError(t, db.Create(&models.ScheduledTaskHistory{ScheduledTaskID: done.ID, RunAt: time.Now()}).Error)

	result, err := PurgeTaskHistoryTask.HandleExecution(ctx, db, models.ScheduledTask{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result["history_deleted"])
	assert.EqualValues(t, 1, result["tasks_deleted"])

	var remaining int64
	require.NoError(t, db.Unscoped().Model(&models.ScheduledTask{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "active tasks are kept")
}

func TestEnsurePurgeScheduledIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, PurgeTaskHistoryTask.EnsureScheduled(ctx, db, time.Now()))
	require.NoError(t, PurgeTaskHistoryTask.EnsureScheduled(ctx, db, time.Now()))

	var tasks []models.ScheduledTask
	require.NoError(t, db.Where("task_name = ?", PurgeTaskHistoryTask.TaskID()).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.ScheduledTaskTypeRecurring, tasks[0].TaskType)
	assert.True(t, tasks[0].Due.After(time.Now()))
}
