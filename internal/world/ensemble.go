package world

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/fizx/internal/dynamo"
)

// Ensemble runs independent worlds concurrently, one per member. Each
// member gets its own world from Build, so nothing is shared between runs.
type Ensemble struct {
	Build   func(member int) (*World, error)
	Members int
}

// Run returns one result per member in member order. The first failing
// member's error is returned alongside every result collected.
func (e *Ensemble) Run(ctx context.Context, cfg dynamo.Config) ([]*Result, error) {
	if e.Members < 1 {
		return nil, fmt.Errorf("%w: ensemble needs at least one member, got %d", dynamo.ErrInvalidArgument, e.Members)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.Members)
	errs := make([]error, e.Members)

	var wg sync.WaitGroup
	for i := 0; i < e.Members; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w, err := e.Build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			member := cfg
			member.Workers = 1
			results[idx], errs[idx] = w.Run(ctx, member)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("ensemble member %d: %w", i, err)
		}
	}
	return results, nil
}
