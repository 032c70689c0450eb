package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/services"
)

type stubChannel struct {
	name  string
	err   error
	calls int
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Notify(ctx context.Context, msg models.ContactMessage) error {
	c.calls++
	return c.err
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Get("missing")
	assert.False(t, ok)

	r.Register("b", LogInfoTask.HandleExecution)
	r.Register("a", LogInfoTask.HandleExecution)
	_, ok = r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestDefineTasksRegistersEveryTask(t *testing.T) {
	DefineTasks(Dependencies{})
	for _, name := range []string{"log_info", "purge_task_history", "send_contact_notification"} {
		_, ok := GetHandler(name)
		assert.True(t, ok, name)
	}
}

func TestBuildScheduledTask(t *testing.T) {
	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	task, err := BuildScheduledTask("log_info", map[string]string{"message": "hi"}, due, nil, models.ScheduledTaskTypeOneTime, 0)
	require.NoError(t, err)

	assert.Equal(t, "log_info", task.TaskName)
	assert.Equal(t, "hi", task.Arguments["message"])
	assert.Equal(t, models.ScheduledTaskStatusActive, task.Status)
	assert.Equal(t, 1, task.MaxAttempt, "at least one attempt")

	_, err = BuildScheduledTask("x", make(chan int), due, nil, models.ScheduledTaskTypeOneTime, 1)
	assert.Error(t, err)
}

func TestContactArgsSurviveTheArgumentMap(t *testing.T) {
	at := time.Date(2024, 5, 2, 12, 30, 0, 0, time.UTC)
	args := SendContactNotificationArgs{
		Message:  models.ContactMessage{ID: "m1", Name: "Ada", Email: "ada@example.com", SubmittedAt: at},
		Channels: []string{"email"},
	}
	task, err := SendContactNotificationTask.CreateTask(args, 3)
	require.NoError(t, err)

	var decoded SendContactNotificationArgs
	require.NoError(t, decodeArgs(task.Arguments, &decoded))
	assert.Equal(t, 1, decoded.AttemptCount, "attempts are counted from one")
	assert.Equal(t, "ada@example.com", decoded.Message.Email)
	assert.True(t, at.Equal(decoded.Message.SubmittedAt))
	assert.Equal(t, []string{"email"}, decoded.Channels)
}

func TestPlanRetry(t *testing.T) {
	args := SendContactNotificationArgs{Message: models.ContactMessage{ID: "m1"}, AttemptCount: 1}

	t.Run("success", func(t *testing.T) {
		result, retry, err := planRetry(args, nil, 3)
		require.NoError(t, err)
		assert.Nil(t, retry)
		assert.Equal(t, "success", result["status"])
	})

	t.Run("partial failure keeps only failed channels", func(t *testing.T) {
		failures := map[string]error{"push": errors.New("fcm"), "email": errors.New("smtp")}
		result, retry, err := planRetry(args, failures, 3)
		require.NoError(t, err)
		require.NotNil(t, retry)
		assert.Equal(t, []string{"email", "push"}, retry.Channels)
		assert.Equal(t, 2, retry.AttemptCount)
		assert.Equal(t, "rescheduled", result["status"])
		assert.Equal(t, []string{"email: smtp", "push: fcm"}, result["errors"])
	})

	t.Run("last attempt fails without retry", func(t *testing.T) {
		last := args
		last.AttemptCount = 3
		result, retry, err := planRetry(last, map[string]error{"email": errors.New("smtp")}, 3)
		assert.Nil(t, retry)
		assert.ErrorIs(t, err, ErrNoRetry)
		assert.Equal(t, "failure", result["status"])
	})
}

func TestSendContactNotificationWithoutChannels(t *testing.T) {
	def := &SendContactNotificationTaskDef{notifier: services.NewNotifier(nil)}
	_, err := def.HandleExecution(context.Background(), nil, models.ScheduledTask{})
	assert.ErrorIs(t, err, ErrNoRetry)
}

func TestSendContactNotificationDelivers(t *testing.T) {
	email := &stubChannel{name: "email"}
	push := &stubChannel{name: "push"}
	def := &SendContactNotificationTaskDef{notifier: services.NewNotifier(nil, email, push)}

	task, err := def.CreateTask(SendContactNotificationArgs{
		Message:  models.ContactMessage{ID: "m1"},
		Channels: []string{"push"},
	}, 3)
	require.NoError(t, err)

	var db *gorm.DB
	result, err := def.HandleExecution(context.Background(), db, *task)
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 0, email.calls, "channel filter is honoured")
	assert.Equal(t, 1, push.calls)
}

func TestLogInfoTask(t *testing.T) {
	result, err := LogInfoTask.HandleExecution(context.Background(), nil, models.ScheduledTask{
		Arguments: map[string]interface{}{"message": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result["message"])
}

func TestPurgeCutoff(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	def := &PurgeTaskHistoryTaskDef{defaultRetention: 30 * 24 * time.Hour}

	assert.Equal(t, now.AddDate(0, 0, -30), def.Cutoff(PurgeTaskHistoryArgs{}, now))
	assert.Equal(t, now.AddDate(0, 0, -7), def.Cutoff(PurgeTaskHistoryArgs{RetentionDays: 7}, now))
}

func TestPurgeTaskIsRecurringDaily(t *testing.T) {
	start := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	task, err := PurgeTaskHistoryTask.CreateTask(PurgeTaskHistoryArgs{}, start)
	require.NoError(t, err)

	assert.Equal(t, models.ScheduledTaskTypeRecurring, task.TaskType)
	next := task.NextDueAfter(start)
	assert.True(t, time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC).Equal(next), "got %s", next)
}

func TestNextState(t *testing.T) {
	ranAt := time.Date(2024, 6, 30, 3, 0, 5, 0, time.UTC)
	daily := PurgeScheduleRule
	until := "FREQ=DAILY;COUNT=1"

	tests := []struct {
		name      string
		task      models.ScheduledTask
		runErr    error
		status    models.ScheduledTaskStatus
		nextDueAt *time.Time
	}{
		{
			name:   "one-time success",
			task:   models.ScheduledTask{TaskType: models.ScheduledTaskTypeOneTime},
			status: models.ScheduledTaskStatusDone,
		},
		{
			name:   "one-time failure",
			task:   models.ScheduledTask{TaskType: models.ScheduledTaskTypeOneTime},
			runErr: errors.New("boom"),
			status: models.ScheduledTaskStatusFailure,
		},
		{
			name: "recurring moves to next occurrence",
			task: models.ScheduledTask{
				TaskType:          models.ScheduledTaskTypeRecurring,
				RecurringInterval: &daily,
				Due:               time.Date(2024, 6, 30, 3, 0, 0, 0, time.UTC),
			},
			status:    models.ScheduledTaskStatusActive,
			nextDueAt: ptr(time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC)),
		},
		{
			name: "recurring failure still moves on",
			task: models.ScheduledTask{
				TaskType:          models.ScheduledTaskTypeRecurring,
				RecurringInterval: &daily,
				Due:               time.Date(2024, 6, 30, 3, 0, 0, 0, time.UTC),
			},
			runErr:    errors.New("db down"),
			status:    models.ScheduledTaskStatusActive,
			nextDueAt: ptr(time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC)),
		},
		{
			name: "exhausted rule is done",
			task: models.ScheduledTask{
				TaskType:          models.ScheduledTaskTypeRecurring,
				RecurringInterval: &until,
				Due:               time.Date(2024, 6, 30, 3, 0, 0, 0, time.UTC),
			},
			status: models.ScheduledTaskStatusDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := nextState(tt.task, tt.runErr, ranAt)
			assert.Equal(t, tt.status, updates["status"])
			assert.Equal(t, &ranAt, updates["last_run"])
			if tt.nextDueAt != nil {
				due, ok := updates["due"].(time.Time)
				require.True(t, ok)
				assert.True(t, tt.nextDueAt.Equal(due), "got %s", due)
			} else {
				assert.NotContains(t, updates, "due")
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

var errInsert = errors.New("insert refused")

// failingInsertDB is a gorm handle whose inserts fail before reaching a server
func failingInsertDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable"), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:refuse_insert", func(tx *gorm.DB) {
		_ = tx.AddError(errInsert)
	}))
	return db
}

func TestSendContactNotificationRescheduleFailureStopsRetries(t *testing.T) {
	email := &stubChannel{name: "email"}
	whatsapp := &stubChannel{name: "whatsapp", err: errors.New("waha down")}
	def := &SendContactNotificationTaskDef{notifier: services.NewNotifier(nil, email, whatsapp)}

	task, err := def.CreateTask(SendContactNotificationArgs{Message: models.ContactMessage{ID: "m2"}}, 3)
	require.NoError(t, err)

	result, err := def.HandleExecution(context.Background(), failingInsertDB(t), *task)
	assert.ErrorIs(t, err, errInsert)
	assert.ErrorIs(t, err, ErrNoRetry, "the worker must not rerun channels that already delivered")
	assert.Equal(t, "rescheduled", result["status"])
	assert.NotContains(t, result, "retry_task_id")
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, whatsapp.calls)
}
