package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/on-the-ground/saga_ive_go/shared/helper"
)

// Delay is the timer raced by Debounce. It takes a single time.Duration and
// resolves with true once it has elapsed, or with ctx.Err() if ctx ends first.
func Delay(ctx context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("delay: %w: want one duration, got %d args", helper.ErrUnexpectedType, len(args))
	}
	d, err := helper.GetTypedValueOf[time.Duration](func() (any, error) { return args[0], nil })
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
