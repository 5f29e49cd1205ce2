package parallel

import (
	"fmt"
	"strings"

	"github.com/agbru/vsort/internal/hardware"
	"github.com/agbru/vsort/internal/logging"
)

// Kind names an executor backend.
type Kind string

const (
	KindAnts       Kind = "ants"
	KindErrgroup   Kind = "errgroup"
	KindSequential Kind = "sequential"
)

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAnts, KindErrgroup, KindSequential:
		return k, nil
	case "":
		return KindAnts, nil
	}
	return "", fmt.Errorf("unknown executor %q (want ants, errgroup or sequential)", s)
}

// Config selects and sizes an executor.
type Config struct {
	Kind Kind
	// Workers overrides the performance core count.
	Workers int
	Logger  logging.Logger
}

// New builds the executor described by cfg for the given processor. A
// machine with a single performance core always gets Sequential.
func New(cfg Config, p hardware.Profile) (Executor, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = p.PerformanceCores
	}
	utility := p.EfficiencyCores
	if utility <= 0 {
		utility = workers / 2
	}
	if workers <= 1 {
		return Sequential{}, nil
	}

	switch cfg.Kind {
	case KindAnts, "":
		return NewPoolExecutor(PoolConfig{Workers: workers, UtilityWorkers: utility, Logger: cfg.Logger})
	case KindErrgroup:
		return NewGroupExecutor(workers, utility), nil
	case KindSequential:
		return Sequential{}, nil
	}
	return nil, fmt.Errorf("unknown executor %q", cfg.Kind)
}
