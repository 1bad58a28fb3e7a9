package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to activate every forum view once at startup.
// Example usage:
//
//	scheduler := NewScheduler(registry, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
