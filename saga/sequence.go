package saga

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sequence is a lazy, single-pass sequence of effect descriptions driven by a
// transition table. The interpreter pulls effects with Resume and reports
// failures with ResumeWithError.
//
// A Sequence is owned by one interpreter goroutine. NEVER share it across
// goroutines.
type Sequence struct {
	id      string
	name    string
	table   Table
	state   State
	pending Update
	slots   Slots
	logger  *zap.Logger
}

// NewSequence creates a session over table starting at initial.
// No transition runs until the first Resume.
func NewSequence(cfg Config, table Table, initial State, name string) *Sequence {
	cfg = NewConfig(cfg.Logger)
	s := &Sequence{
		id:     uuid.New().String(),
		name:   name,
		table:  table,
		state:  initial,
		logger: cfg.Logger,
	}
	s.logger.Sugar().Debugf("created saga sequence: sessionId: %v, name: %v, initial: %v", s.id, s.name, initial)
	return s
}

func (s *Sequence) ID() string { return s.id }
func (s *Sequence) Name() string { return s.name }
func (s *Sequence) String() string { return s.name }
func (s *Sequence) State() State { return s.state }
func (s *Sequence) Done() bool { return s.state == StateEnd }

// Resume advances the session by one transition.
//
// The update left pending by the previous transition is applied with result
// first. ok is false once the sequence has finished; a finished sequence
// stays finished. While ok is true, eff may be nil: the step needed no
// effect and the interpreter should resume again with nil.
func (s *Sequence) Resume(result any) (eff Effect, ok bool, err error) {
	if s.Done() {
		return nil, false, nil
	}

	if err := s.slots.apply(s.pending, result); err != nil {
		return nil, false, s.fail(err)
	}

	from := s.state
	fn, found := s.table[from]
	if !found {
		return nil, false, s.fail(fmt.Errorf("%w: %v", ErrUnknownState, from))
	}

	tr, err := fn(s.slots)
	if err != nil {
		return nil, false, s.fail(err)
	}

	s.state = tr.Next
	s.pending = tr.Update
	s.logger.Debug("saga transition",
		zap.String("sessionId", s.id),
		zap.String("name", s.name),
		zap.Stringer("from", from),
		zap.Stringer("to", tr.Next),
		zap.Stringer("update", tr.Update),
		zap.Any("effect", tr.Effect),
	)

	if tr.Next == StateEnd || tr.Effect == EndEffect {
		s.terminate("finished")
		return nil, false, nil
	}
	return tr.Effect, true, nil
}

// Next resumes with result and keeps resuming with nil past steps that need
// no effect. It returns the next effect to perform, or ok == false once the
// sequence has finished.
func (s *Sequence) Next(result any) (eff Effect, ok bool, err error) {
	eff, ok, err = s.Resume(result)
	for ok && err == nil && eff == nil {
		eff, ok, err = s.Resume(nil)
	}
	return
}

// ResumeWithError reports that the awaited effect failed. The session ends,
// the pending update is discarded and err is returned unchanged.
func (s *Sequence) ResumeWithError(err error) error {
	if !s.Done() {
		s.terminate("aborted")
	}
	return err
}

func (s *Sequence) fail(err error) error {
	s.terminate("failed")
	return fmt.Errorf("%s: %w", s.name, err)
}

func (s *Sequence) terminate(reason string) {
	s.state = StateEnd
	s.pending = NoUpdate
	s.logger.Sugar().Debugf("closed saga sequence: sessionId: %v, name: %v, reason: %v", s.id, s.name, reason)
}
