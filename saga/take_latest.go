package saga

// TakeLatest forks worker for every event matching pattern, cancelling the
// previous run first. At most one run started by the sequence is in flight.
func TakeLatest(pattern Pattern, worker Worker, args ...any) *Sequence {
	return defaultConfig.TakeLatest(pattern, worker, args...)
}

func (cfg Config) TakeLatest(pattern Pattern, worker Worker, args ...any) *Sequence {
	take := Take{Pattern: pattern}

	return NewSequence(cfg, Table{
		Q1: func(Slots) (Transition, error) {
			return Transition{Next: Q2, Effect: take, Update: SetAction}, nil
		},
		Q2: func(s Slots) (Transition, error) {
			if s.Action == End {
				return Transition{Next: StateEnd, Effect: EndEffect}, nil
			}
			if s.Task == nil {
				return Transition{Next: Q3}, nil
			}
			return Transition{Next: Q3, Effect: Cancel{Task: s.Task}}, nil
		},
		Q3: func(s Slots) (Transition, error) {
			return Transition{Next: Q1, Effect: forkWith(worker, args, s.Action), Update: SetTask}, nil
		},
	}, Q1, combinatorName("takeLatest", pattern, worker))
}
