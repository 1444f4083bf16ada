package saga

import (
	"fmt"

	"github.com/on-the-ground/saga_ive_go/shared/helper"
)

// State identifies a state of a combinator's transition table.
type State uint8

const (
	// StateEnd is the terminal sentinel. It is never a table key.
	StateEnd State = iota
	Q1
	Q2
	Q3
	Q4
)

func (s State) String() string {
	switch s {
	case StateEnd:
		return "end"
	case Q1, Q2, Q3, Q4:
		return fmt.Sprintf("q%d", uint8(s))
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Update names the slot write the driver applies, with the next resume value,
// before running the following transition.
type Update uint8

const (
	NoUpdate Update = iota
	// SetAction stores the resume value as the current event.
	SetAction
	// SetTask stores the resume value as the in-flight task handle.
	SetTask
	// SetRaceOutput stores the resume value as the latest race outcome.
	SetRaceOutput
	// PromoteRaceAction copies the event that won the latest race into the
	// current event. The resume value is ignored.
	PromoteRaceAction
)

func (u Update) String() string {
	switch u {
	case NoUpdate:
		return "none"
	case SetAction:
		return "setAction"
	case SetTask:
		return "setTask"
	case SetRaceOutput:
		return "setRaceOutput"
	case PromoteRaceAction:
		return "promoteRaceAction"
	default:
		return fmt.Sprintf("update(%d)", uint8(u))
	}
}

// Slots are the combinator-local values of one session.
type Slots struct {
	Action     any
	Task       Task
	RaceOutput RaceOutcome
}

// apply writes result into the slot named by u.
func (s *Slots) apply(u Update, result any) error {
	switch u {
	case NoUpdate:
	case SetAction:
		s.Action = result
	case SetTask:
		s.Task = result
	case SetRaceOutput:
		out, err := raceOutcomeOf(result)
		if err != nil {
			return err
		}
		s.RaceOutput = out
	case PromoteRaceAction:
		s.Action = s.RaceOutput.Value
	default:
		// Update is a closed enum, so this should never happen
		// Bug in the code
		panic(fmt.Sprintf("unrecognized slot update: %v", u))
	}
	return nil
}

func raceOutcomeOf(result any) (RaceOutcome, error) {
	if p, ok := result.(*RaceOutcome); ok && p != nil {
		result = *p
	}
	out, present, err := helper.OptionalTypedValueOf[RaceOutcome](result)
	if err != nil {
		return RaceOutcome{}, fmt.Errorf("%w: %w", ErrUnexpectedResult, err)
	}
	if !present {
		return RaceOutcome{}, fmt.Errorf("%w: race resumed without an outcome", ErrMalformedRaceOutcome)
	}
	return out, nil
}

// Transition is what a transition function returns: the next state, the
// effect to hand to the interpreter (nil for none) and the slot update to
// apply with the value the interpreter resumes with.
type Transition struct {
	Next   State
	Effect Effect
	Update Update
}

// TransitionFn computes the transition out of one state. It reads slots and
// must not cause side effects.
type TransitionFn func(Slots) (Transition, error)

// Table maps each non-terminal state to its transition function.
type Table map[State]TransitionFn
