package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names, matching the keys of the scheduler.tasks config section.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskDailyReport    = "daily_report"
)

// RegisterAllTasks initializes and returns a map of all registered scheduled tasks.
// The keys of the map identify tasks in the configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[TaskSQLMaintenance] = newSQLMaintenanceTask(deps)
	tasks[TaskDailyReport] = newDailyReportTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
