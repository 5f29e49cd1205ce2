package parallel

import "golang.org/x/sync/errgroup"

// GroupExecutor forks every task onto its own goroutine through an
// errgroup bounded to the worker count of the requested class.
type GroupExecutor struct {
	workers        int
	utilityWorkers int
}

// NewGroupExecutor returns an executor running at most workers tasks at
// once, or utilityWorkers under QoSUtility.
func NewGroupExecutor(workers, utilityWorkers int) *GroupExecutor {
	workers = max(workers, 1)
	if utilityWorkers <= 0 || utilityWorkers > workers {
		utilityWorkers = max(workers/2, 1)
	}
	return &GroupExecutor{workers: workers, utilityWorkers: utilityWorkers}
}

// ForkJoin runs tasks and waits for all of them. Unlike errgroup's usual
// contract, every task runs even if an earlier one failed: siblings always
// complete so the data they share is left as a valid permutation.
func (e *GroupExecutor) ForkJoin(qos QoS, tasks []func()) error {
	var g errgroup.Group
	if qos == QoSUtility {
		g.SetLimit(e.utilityWorkers)
	} else {
		g.SetLimit(e.workers)
	}
	for _, task := range tasks {
		g.Go(func() error { return runTask(task) })
	}
	return g.Wait()
}

// Parallel reports whether more than one worker is configured.
func (e *GroupExecutor) Parallel() bool { return e.workers > 1 }
