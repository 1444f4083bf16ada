package saga

import (
	"fmt"
	"time"
)

// Debounce forks worker once per burst of events matching pattern, after
// delayLength passes with no further matching event. The run receives the
// last event of the burst. Every new event restarts the quiet period.
func Debounce(delayLength time.Duration, pattern Pattern, worker Worker, args ...any) *Sequence {
	return defaultConfig.Debounce(delayLength, pattern, worker, args...)
}

func (cfg Config) Debounce(delayLength time.Duration, pattern Pattern, worker Worker, args ...any) *Sequence {
	take := Take{Pattern: pattern}
	race := Race{Branches: []RaceBranch{
		{Key: RaceAction, Effect: take},
		{Key: RaceDebounced, Effect: Call{Fn: Delay, Args: []any{delayLength}}},
	}}

	return NewSequence(cfg, Table{
		Q1: func(Slots) (Transition, error) {
			return Transition{Next: Q2, Effect: take, Update: SetAction}, nil
		},
		Q2: func(s Slots) (Transition, error) {
			if s.Action == End {
				return Transition{Next: StateEnd, Effect: EndEffect}, nil
			}
			return Transition{Next: Q3, Effect: race, Update: SetRaceOutput}, nil
		},
		Q3: func(s Slots) (Transition, error) {
			switch s.RaceOutput.Winner {
			case RaceDebounced:
				return Transition{Next: Q1, Effect: forkWith(worker, args, s.Action)}, nil
			case RaceAction:
				if s.RaceOutput.Value == End {
					return Transition{Next: StateEnd, Effect: EndEffect}, nil
				}
				return Transition{Next: Q4, Update: PromoteRaceAction}, nil
			default:
				return Transition{}, fmt.Errorf("%w: winner %q", ErrMalformedRaceOutcome, s.RaceOutput.Winner)
			}
		},
		Q4: func(Slots) (Transition, error) {
			return Transition{Next: Q2}, nil
		},
	}, Q1, combinatorName("debounce", pattern, worker))
}
