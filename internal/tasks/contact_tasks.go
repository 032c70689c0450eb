package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"portfolio_app_echo/internal/models"
	"portfolio_app_echo/internal/services"
)

// RetryDelay is how long a partially failed notification waits before the
// failed channels are tried again
const RetryDelay = 5 * time.Minute

// SendContactNotificationArgs defines the arguments for a contact notification
type SendContactNotificationArgs struct {
	Message models.ContactMessage `json:"message"`
	// Channels restricts delivery to these channels; empty means all
	Channels     []string `json:"channels,omitempty"`
	AttemptCount int      `json:"attempt_count"`
}

// SendContactNotificationTaskDef delivers a contact message to the owner
type SendContactNotificationTaskDef struct {
	notifier *services.Notifier
}

// TaskID returns the unique identifier for this task
func (t *SendContactNotificationTaskDef) TaskID() string {
	return "send_contact_notification"
}

// CreateTask builds a ScheduledTask record for this task, due now
func (t *SendContactNotificationTaskDef) CreateTask(args SendContactNotificationArgs, maxAttempt int) (*models.ScheduledTask, error) {
	if args.AttemptCount < 1 {
		args.AttemptCount = 1
	}
	return BuildScheduledTask(t.TaskID(), args, time.Now(), nil, models.ScheduledTaskTypeOneTime, maxAttempt)
}

// HandleExecution sends the message through the requested channels. Channels
// that fail are rescheduled on their own until the attempts run out.
func (t *SendContactNotificationTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	if t.notifier == nil || !t.notifier.Enabled() {
		return nil, fmt.Errorf("no notification channels configured: %w", ErrNoRetry)
	}

	var args SendContactNotificationArgs
	if err := decodeArgs(task.Arguments, &args); err != nil {
		return nil, err
	}

	failures := t.notifier.Deliver(ctx, args.Message, args.Channels...)
	result, retry, err := planRetry(args, failures, task.MaxAttempt)
	if retry != nil {
		log.Printf("Partial failure for message %s: %v failed. Rescheduling for attempt %d",
			args.Message.ID, retry.Channels, retry.AttemptCount)

		newTask, buildErr := BuildScheduledTask(t.TaskID(), retry, time.Now().Add(RetryDelay), nil, models.ScheduledTaskTypeOneTime, task.MaxAttempt)
		if buildErr == nil {
			buildErr = db.WithContext(ctx).Create(newTask).Error
		}
		if buildErr != nil {
			// rerunning here would notify the channels that already succeeded again
			log.Printf("Failed to create retry task: %v", buildErr)
			return result, errors.Join(fmt.Errorf("failed to reschedule notification: %w", buildErr), ErrNoRetry)
		}
		result["retry_task_id"] = newTask.ID
	}
	return result, err
}

// planRetry summarizes a delivery and decides whether the failed channels get
// another attempt
func planRetry(args SendContactNotificationArgs, failures map[string]error, maxAttempt int) (map[string]interface{}, *SendContactNotificationArgs, error) {
	result := map[string]interface{}{
		"message_id": args.Message.ID,
		"attempt":    args.AttemptCount,
		"failure":    len(failures),
	}
	if len(failures) == 0 {
		result["status"] = "success"
		return result, nil, nil
	}

	failed := make([]string, 0, len(failures))
	errs := make([]string, 0, len(failures))
	for name := range failures {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		errs = append(errs, fmt.Sprintf("%s: %v", name, failures[name]))
	}
	result["errors"] = errs

	if args.AttemptCount < maxAttempt {
		result["status"] = "rescheduled"
		retry := args
		retry.Channels = failed
		retry.AttemptCount = args.AttemptCount + 1
		return result, &retry, nil
	}

	log.Printf("Max attempts (%d) reached for message %s on %v", maxAttempt, args.Message.ID, failed)
	result["status"] = "failure"
	return result, nil, errors.Join(
		fmt.Errorf("max attempts reached, failed to deliver via %v", failed),
		ErrNoRetry,
	)
}

// SendContactNotificationTask is the singleton instance of SendContactNotificationTaskDef
var SendContactNotificationTask = &SendContactNotificationTaskDef{}
