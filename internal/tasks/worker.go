package tasks

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"portfolio_app_echo/internal/models"
)

// Worker drains due tasks from the outbox on a fixed interval
type Worker struct {
	db       *gorm.DB
	registry *Registry
	interval time.Duration
}

func NewWorker(db *gorm.DB, registry *Registry, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{db: db, registry: registry, interval: interval}
}

// Run processes due tasks once right away and then on every tick until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.ProcessDue(ctx)

	for {
		select {
		case <-ticker.C:
			w.ProcessDue(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ProcessDue executes every active task whose due date has passed and
// returns how many were run
func (w *Worker) ProcessDue(ctx context.Context) int {
	log.Println("Checking for pending tasks...")

	var pendingTasks []models.ScheduledTask
	err := w.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, time.Now()).
		Order("due").
		Find(&pendingTasks).Error
	if err != nil {
		log.Printf("Error fetching pending tasks: %v", err)
		return 0
	}

	if len(pendingTasks) == 0 {
		log.Println("No pending tasks found.")
		return 0
	}

	log.Printf("Found %d pending tasks.", len(pendingTasks))

	ran := 0
	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			break
		}
		w.Execute(ctx, task)
		ran++
	}
	return ran
}

// Execute runs one task, retrying failures immediately up to MaxAttempt,
// records every attempt and moves the task to its next state
func (w *Worker) Execute(ctx context.Context, task models.ScheduledTask) {
	log.Printf("Processing task: %s (ID: %d)", task.TaskName, task.ID)

	handler, found := w.registry.Get(task.TaskName)
	if !found {
		log.Printf("Task handler not found for: %s. Marking as failure.", task.TaskName)

		now := time.Now()
		w.db.WithContext(ctx).Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		w.db.WithContext(ctx).Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          models.TaskRunHandlerNotFound,
			AttemptNumber:   1,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		return
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	var runErr error
	var startTime time.Time
	for attempt := 1; attempt <= maxAttempt; attempt++ {
		startTime = time.Now()
		result, err := handler(ctx, w.db, task)
		runErr = err

		status := models.TaskRunSuccess
		resultData := result
		if err != nil {
			status = models.TaskRunFailure
			resultData = map[string]interface{}{"error": err.Error()}
			for k, v := range result {
				resultData[k] = v
			}
			log.Printf("Task %s failed (attempt %d/%d): %v", task.TaskName, attempt, maxAttempt, err)
		} else {
			log.Printf("Task %s completed successfully.", task.TaskName)
		}

		w.db.WithContext(ctx).Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           startTime,
			Runtime:         int(time.Since(startTime).Milliseconds()),
			Status:          status,
			AttemptNumber:   attempt,
			Arguments:       task.Arguments,
			Result:          resultData,
		})

		if err == nil || errors.Is(err, ErrNoRetry) || ctx.Err() != nil {
			break
		}
	}

	w.db.WithContext(ctx).Model(&task).Updates(nextState(task, runErr, startTime))
}

// nextState returns the column updates for a task after a run
func nextState(task models.ScheduledTask, runErr error, ranAt time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"last_run": &ranAt,
	}

	if runErr != nil && task.TaskType != models.ScheduledTaskTypeRecurring {
		updates["status"] = models.ScheduledTaskStatusFailure
		return updates
	}

	switch task.TaskType {
	case models.ScheduledTaskTypeRecurring:
		// a failed run of a recurring task still moves on to its next occurrence
		nextDue := task.NextDueAfter(ranAt)
		if nextDue.After(task.Due) {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = nextDue
		} else {
			updates["status"] = models.ScheduledTaskStatusDone
		}
	default:
		updates["status"] = models.ScheduledTaskStatusDone
	}
	return updates
}
