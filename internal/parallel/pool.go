package parallel

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/agbru/vsort/internal/logging"
)

// releaseTimeout bounds how long Close waits for running workers.
const releaseTimeout = 5 * time.Second

// PoolExecutor runs tasks on long-lived ants worker pools, one per QoS
// class, sized to the performance and efficiency core counts.
type PoolExecutor struct {
	user    *ants.Pool
	utility *ants.Pool
	logger  logging.Logger
}

// PoolConfig sizes a PoolExecutor.
type PoolConfig struct {
	// Workers is the size of the user-initiated pool.
	Workers int
	// UtilityWorkers is the size of the utility pool; 0 selects Workers/2.
	UtilityWorkers int
	Logger         logging.Logger
}

// NewPoolExecutor starts both worker pools.
func NewPoolExecutor(cfg PoolConfig) (*PoolExecutor, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	workers := max(cfg.Workers, 1)
	utility := cfg.UtilityWorkers
	if utility <= 0 || utility > workers {
		utility = max(workers/2, 1)
	}

	opts := []ants.Option{
		ants.WithLogger(logger),
		ants.WithPanicHandler(func(v interface{}) {
			logger.Error("worker panic escaped task recovery", fmt.Errorf("%v", v))
		}),
	}
	user, err := ants.NewPool(workers, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating user-initiated pool: %w", err)
	}
	util, err := ants.NewPool(utility, opts...)
	if err != nil {
		user.Release()
		return nil, fmt.Errorf("creating utility pool: %w", err)
	}
	return &PoolExecutor{user: user, utility: util, logger: logger}, nil
}

// ForkJoin submits every task to the pool of the given class and waits for
// all of them. A task the pool refuses (closed or overloaded) runs inline
// on the caller.
func (e *PoolExecutor) ForkJoin(qos QoS, tasks []func()) error {
	p := e.user
	if qos == QoSUtility {
		p = e.utility
	}

	var (
		wg sync.WaitGroup
		ec ErrorCollector
	)
	wg.Add(len(tasks))
	for _, task := range tasks {
		run := func() {
			defer wg.Done()
			ec.SetError(runTask(task))
		}
		if err := p.Submit(run); err != nil {
			e.logger.Debug("task submitted inline", logging.String("qos", qos.String()), logging.Err(err))
			run()
		}
	}
	wg.Wait()
	return ec.Err()
}

// Parallel reports whether the user-initiated pool has more than one
// worker.
func (e *PoolExecutor) Parallel() bool { return e.user.Cap() > 1 }

// Workers returns the capacity of the pool serving qos.
func (e *PoolExecutor) Workers(qos QoS) int {
	if qos == QoSUtility {
		return e.utility.Cap()
	}
	return e.user.Cap()
}

// Close releases both pools, waiting briefly for running tasks.
func (e *PoolExecutor) Close() error {
	err1 := e.user.ReleaseTimeout(releaseTimeout)
	err2 := e.utility.ReleaseTimeout(releaseTimeout)
	if err1 != nil {
		return err1
	}
	return err2
}
