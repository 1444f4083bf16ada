package saga

import (
	"context"
	"fmt"
	"strings"
)

// Kind tags an effect description.
type Kind uint8

const (
	KindTake Kind = iota + 1
	KindFork
	KindCancel
	KindRace
	KindCall
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case 0:
		return "none"
	case KindTake:
		return "take"
	case KindFork:
		return "fork"
	case KindCancel:
		return "cancel"
	case KindRace:
		return "race"
	case KindCall:
		return "call"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Effect is an immutable description of an operation the interpreter performs
// on behalf of a sequence. The set of effects is closed.
type Effect interface {
	Kind() Kind
	String() string
	sealed()
}

// Pattern selects events on the bus. Only the bus interprets it.
type Pattern any

// Task is the opaque, comparable handle the interpreter returns for a Fork.
type Task any

// Worker is the function a Fork effect asks the interpreter to run.
// The triggering event is passed as the last argument.
type Worker func(ctx context.Context, args ...any) error

// CallFn is the function a Call effect asks the interpreter to invoke.
type CallFn func(ctx context.Context, args ...any) (any, error)

// RaceKey names a branch of a Race.
type RaceKey string

const (
	RaceAction    RaceKey = "action"
	RaceDebounced RaceKey = "debounced"
)

// RaceBranch is one contender of a Race.
type RaceBranch struct {
	Key    RaceKey
	Effect Effect
}

// RaceOutcome is what the interpreter resumes a sequence with once a Race
// settles: the winning branch and the value it produced.
type RaceOutcome struct {
	Winner RaceKey
	Value  any
}

// Take asks for the next event matching Pattern.
type Take struct {
	Pattern Pattern
}

// Fork asks for Worker to be started concurrently with Args.
// The interpreter resumes with the Task handle immediately.
type Fork struct {
	Worker Worker
	Args   []any
}

// Cancel asks for the run behind Task to be terminated.
type Cancel struct {
	Task Task
}

// Race asks for all branches to be started; the first to settle wins and the
// others are abandoned.
type Race struct {
	Branches []RaceBranch
}

// Call asks for Fn to be invoked with Args.
type Call struct {
	Fn   CallFn
	Args []any
}

type endEffect struct{}

// EndEffect ends a sequence when a transition emits it.
var EndEffect Effect = endEffect{}

type endEvent struct{}

func (endEvent) String() string { return "END" }

// End is the event a bus delivers when no more events will come.
var End any = endEvent{}

func (Take) Kind() Kind { return KindTake }
func (Fork) Kind() Kind { return KindFork }
func (Cancel) Kind() Kind { return KindCancel }
func (Race) Kind() Kind { return KindRace }
func (Call) Kind() Kind { return KindCall }
func (endEffect) Kind() Kind { return KindEnd }
func (Take) sealed() {}
func (Fork) sealed() {}
func (Cancel) sealed() {}
func (Race) sealed() {}
func (Call) sealed() {}
func (endEffect) sealed() {}
func (endEffect) String() string { return "end" }

func (t Take) String() string {
	return fmt.Sprintf("take(%s)", patternName(t.Pattern))
}

func (f Fork) String() string {
	return fmt.Sprintf("fork(%s)", joinArgs(funcName(f.Worker), f.Args))
}

func (c Cancel) String() string {
	return fmt.Sprintf("cancel(%v)", c.Task)
}

func (r Race) String() string {
	parts := make([]string, 0, len(r.Branches))
	for _, b := range r.Branches {
		parts = append(parts, fmt.Sprintf("%s: %s", b.Key, b.Effect))
	}
	return fmt.Sprintf("race(%s)", strings.Join(parts, ", "))
}

func (c Call) String() string {
	return fmt.Sprintf("call(%s)", joinArgs(funcName(c.Fn), c.Args))
}

// Branch returns the effect raced under key.
func (r Race) Branch(key RaceKey) (Effect, bool) {
	for _, b := range r.Branches {
		if b.Key == key {
			return b.Effect, true
		}
	}
	return nil, false
}

func joinArgs(head string, args []any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, head)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, ", ")
}

// forkWith builds a Fork whose args are args followed by action. The args
// slice is copied so effects never share backing arrays.
func forkWith(worker Worker, args []any, action any) Fork {
	forkArgs := make([]any, 0, len(args)+1)
	forkArgs = append(forkArgs, args...)
	forkArgs = append(forkArgs, action)
	return Fork{Worker: worker, Args: forkArgs}
}
