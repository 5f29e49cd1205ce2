package orchestration

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/pool"
)

// TestRunNoDeadlock_SharedResources verifies that concurrent parallel sorts
// sharing one executor and one pool slot all complete: the slot never
// blocks, losers fall back to transient buffers, and pool workers are never
// held by a task waiting on another.
func TestRunNoDeadlock_SharedResources(t *testing.T) {
	pe, err := parallel.NewPoolExecutor(parallel.PoolConfig{Workers: 2, Logger: logging.NewNopLogger()})
	if err != nil {
		t.Fatal(err)
	}
	defer pe.Close()

	executors := map[string]parallel.Executor{
		"ants":       pe,
		"errgroup":   parallel.NewGroupExecutor(2, 1),
		"sequential": parallel.Sequential{},
	}

	for name, ex := range executors {
		t.Run(name, func(t *testing.T) {
			slot := pool.NewSlot[int32](nil)
			cfg := Config{Thresholds: testThresholds, Executor: ex}

			const sorters = 16
			results := make([][]int32, sorters)
			errs := make([]error, sorters)
			var wg sync.WaitGroup
			for i := range sorters {
				results[i] = randomInt32s(3000+i*17, uint64(i))
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs[i] = Run(context.Background(), cfg, slot, results[i])
				}()
			}

			done := make(chan struct{})
			go func() { wg.Wait(); close(done) }()
			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: concurrent sorts did not complete within 10 seconds")
			}

			for i := range sorters {
				if errs[i] != nil {
					t.Errorf("sorter %d: %v", i, errs[i])
				}
				if !slices.IsSorted(results[i]) {
					t.Errorf("sorter %d: not sorted", i)
				}
			}
			if slot.Busy() {
				t.Error("slot left leased")
			}
		})
	}
}

// TestRunNoDeadlock_Utility exercises the smaller utility pool with more
// tasks than workers.
func TestRunNoDeadlock_Utility(t *testing.T) {
	pe, err := parallel.NewPoolExecutor(parallel.PoolConfig{Workers: 4, UtilityWorkers: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer pe.Close()

	data := randomInt32s(50000, 99)
	cfg := Config{Thresholds: testThresholds, Executor: pe, QoS: parallel.QoSUtility}

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), cfg, nil, data) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: utility pool run did not complete")
	}
	if !slices.IsSorted(data) {
		t.Error("not sorted")
	}
}
