// Package parallel provides the fork-join executors behind the parallel
// sort path. An Executor runs a batch of independent tasks and returns only
// when every task has finished; the orchestrator never relies on anything
// else. Three backends exist: an ants worker pool per quality-of-service
// class, an errgroup-based executor and a sequential fallback used when the
// platform or configuration offers no parallelism.
package parallel
