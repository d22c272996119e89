package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The main application starts and stops the pool; tasks
// are enqueued by the interval ticker.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
