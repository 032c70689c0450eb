package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"portfolio_app_echo/internal/models"
)

// LogInfoTaskDef encapsulates the log info task
type LogInfoTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *LogInfoTaskDef) TaskID() string {
	return "log_info"
}

// HandleExecution logs the message argument
func (t *LogInfoTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	message, ok := task.Arguments["message"].(string)
	if !ok {
		message = "No message provided"
	}
	log.Printf("[Task: log_info] Message: %s", message)

	return map[string]interface{}{
		"status":  "success",
		"message": message,
	}, nil
}

// LogInfoTask is the singleton instance of LogInfoTaskDef
var LogInfoTask = &LogInfoTaskDef{}

// PurgeScheduleRule runs the purge every night at 03:00
const PurgeScheduleRule = "FREQ=DAILY;BYHOUR=3;BYMINUTE=0;BYSECOND=0"

// PurgeTaskHistoryArgs defines the arguments for the purge task
type PurgeTaskHistoryArgs struct {
	RetentionDays int `json:"retention_days"`
}

// PurgeTaskHistoryTaskDef deletes finished outbox rows and old run history.
// Contact messages live in task arguments, so this is also what bounds how
// long visitor details are stored.
type PurgeTaskHistoryTaskDef struct {
	defaultRetention time.Duration
}

// TaskID returns the unique identifier for this task
func (t *PurgeTaskHistoryTaskDef) TaskID() string {
	return "purge_task_history"
}

// CreateTask builds the recurring purge task starting at start
func (t *PurgeTaskHistoryTaskDef) CreateTask(args PurgeTaskHistoryArgs, start time.Time) (*models.ScheduledTask, error) {
	rule := PurgeScheduleRule
	return BuildScheduledTask(t.TaskID(), args, start, &rule, models.ScheduledTaskTypeRecurring, 1)
}

// Cutoff returns the instant before which rows are purged
func (t *PurgeTaskHistoryTaskDef) Cutoff(args PurgeTaskHistoryArgs, now time.Time) time.Time {
	retention := t.defaultRetention
	if args.RetentionDays > 0 {
		retention = time.Duration(args.RetentionDays) * 24 * time.Hour
	}
	return now.Add(-retention)
}

// HandleExecution hard-deletes history and finished one-time tasks older than the cutoff
func (t *PurgeTaskHistoryTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args PurgeTaskHistoryArgs
	if err := decodeArgs(task.Arguments, &args); err != nil {
		return nil, err
	}
	cutoff := t.Cutoff(args, time.Now())

	history := db.WithContext(ctx).Unscoped().
		Where("run_at < ?", cutoff).
		Delete(&models.ScheduledTaskHistory{})
	if history.Error != nil {
		return nil, fmt.Errorf("failed to purge task history: %w", history.Error)
	}

	finished := db.WithContext(ctx).Unscoped().
		Where("task_type = ? AND status IN ? AND updated_at < ?",
			models.ScheduledTaskTypeOneTime,
			[]models.ScheduledTaskStatus{models.ScheduledTaskStatusDone, models.ScheduledTaskStatusFailure},
			cutoff).
		Delete(&models.ScheduledTask{})
	if finished.Error != nil {
		return nil, fmt.Errorf("failed to purge finished tasks: %w", finished.Error)
	}

	log.Printf("[Task: purge_task_history] Removed %d history rows and %d finished tasks older than %s",
		history.RowsAffected, finished.RowsAffected, cutoff.Format(time.RFC3339))

	return map[string]interface{}{
		"status":          "success",
		"cutoff":          cutoff.Format(time.RFC3339),
		"history_deleted": history.RowsAffected,
		"tasks_deleted":   finished.RowsAffected,
	}, nil
}

// EnsureScheduled creates the recurring purge task unless an active one exists
func (t *PurgeTaskHistoryTaskDef) EnsureScheduled(ctx context.Context, db *gorm.DB, now time.Time) error {
	var count int64
	err := db.WithContext(ctx).Model(&models.ScheduledTask{}).
		Where("task_name = ? AND status = ?", t.TaskID(), models.ScheduledTaskStatusActive).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to look up purge task: %w", err)
	}
	if count > 0 {
		return nil
	}

	task, err := t.CreateTask(PurgeTaskHistoryArgs{}, now)
	if err != nil {
		return err
	}
	task.Due = task.NextDueAfter(now)
	if err := db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to schedule purge task: %w", err)
	}
	log.Printf("Scheduled %s, first run at %s", t.TaskID(), task.Due.Format(time.RFC3339))
	return nil
}

// PurgeTaskHistoryTask is the singleton instance of PurgeTaskHistoryTaskDef
var PurgeTaskHistoryTask = &PurgeTaskHistoryTaskDef{defaultRetention: 30 * 24 * time.Hour}
