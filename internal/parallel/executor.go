//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

package parallel

import "fmt"

// QoS is the quality-of-service class a batch of tasks runs under.
type QoS int

const (
	// QoSUserInitiated runs on the performance-core pool.
	QoSUserInitiated QoS = iota
	// QoSUtility runs on the smaller efficiency pool.
	QoSUtility
)

// String returns the class name.
func (q QoS) String() string {
	switch q {
	case QoSUserInitiated:
		return "user-initiated"
	case QoSUtility:
		return "utility"
	}
	return fmt.Sprintf("QoS(%d)", int(q))
}

// Executor runs a batch of independent tasks and joins them.
//
// ForkJoin returns after every task has returned. Tasks must touch disjoint
// data. A task that panics does not bring down the process; the panic is
// reported as a *PanicError once the batch has joined.
type Executor interface {
	ForkJoin(qos QoS, tasks []func()) error
	// Parallel reports whether tasks may actually run concurrently.
	Parallel() bool
}

// Sequential runs tasks one after another on the calling goroutine.
type Sequential struct{}

// ForkJoin runs every task in order, recovering panics.
func (Sequential) ForkJoin(_ QoS, tasks []func()) error {
	var ec ErrorCollector
	for _, task := range tasks {
		ec.SetError(runTask(task))
	}
	return ec.Err()
}

// Parallel always returns false.
func (Sequential) Parallel() bool { return false }

// PanicError carries the value of a recovered task panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: task panicked: %v", e.Value)
}

// runTask calls task and converts a panic into a *PanicError.
func runTask(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	task()
	return nil
}
