package tasks

import (
	"time"

	"portfolio_app_echo/internal/services"
)

// Dependencies are the services task handlers need
type Dependencies struct {
	Notifier *services.Notifier
	// HistoryRetention is how long finished tasks and run history are kept
	HistoryRetention time.Duration
}

// DefineTasks registers all available tasks
func DefineTasks(deps Dependencies) {
	SendContactNotificationTask.notifier = deps.Notifier
	if deps.HistoryRetention > 0 {
		PurgeTaskHistoryTask.defaultRetention = deps.HistoryRetention
	}

	// General tasks
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)
	RegisterHandler(PurgeTaskHistoryTask.TaskID(), PurgeTaskHistoryTask.HandleExecution)

	// Contact tasks
	RegisterHandler(SendContactNotificationTask.TaskID(), SendContactNotificationTask.HandleExecution)
}
