package stream

// Scheduler runs tasks on the goroutine that owns a component tree.
// Post must be safe to call from any goroutine.
type Scheduler interface {
	Post(task func() error)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func() error)

// Post implements Scheduler.
func (f SchedulerFunc) Post(task func() error) {
	f(task)
}
