package saga

// TakeEvery forks worker for every event matching pattern. Runs never cancel
// each other, so any number of them may be in flight.
func TakeEvery(pattern Pattern, worker Worker, args ...any) *Sequence {
	return defaultConfig.TakeEvery(pattern, worker, args...)
}

func (cfg Config) TakeEvery(pattern Pattern, worker Worker, args ...any) *Sequence {
	take := Take{Pattern: pattern}

	return NewSequence(cfg, Table{
		Q1: func(Slots) (Transition, error) {
			return Transition{Next: Q2, Effect: take, Update: SetAction}, nil
		},
		Q2: func(s Slots) (Transition, error) {
			if s.Action == End {
				return Transition{Next: StateEnd, Effect: EndEffect}, nil
			}
			return Transition{Next: Q1, Effect: forkWith(worker, args, s.Action)}, nil
		},
	}, Q1, combinatorName("takeEvery", pattern, worker))
}
