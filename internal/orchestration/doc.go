// Package orchestration runs the parallel sort: the input is cut into
// cache-sized chunks that are sorted concurrently, then adjacent runs are
// merged pairwise in rounds of doubling width until one run remains. Every
// phase is a fork-join batch on a parallel.Executor, so sibling tasks only
// ever touch disjoint ranges and each round observes the previous one
// complete.
package orchestration
