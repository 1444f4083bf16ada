// Package sagatest interprets saga sequences against a scripted event log in
// virtual time, for tests.
package sagatest

import (
	"errors"
	"fmt"
	"time"

	"github.com/on-the-ground/saga_ive_go/saga"
	"github.com/on-the-ground/saga_ive_go/shared/helper"
)

// None is the kind recorded for a step that carried no effect.
const None saga.Kind = 0

var (
	ErrStepLimit   = errors.New("step limit reached")
	ErrUnsupported = errors.New("unsupported effect")
)

// Event is a bus event delivered at a virtual time.
type Event struct {
	At     time.Duration
	Action any
}

// TaskHandle is the Task the simulator hands out for each Fork.
type TaskHandle int

func (h TaskHandle) String() string { return fmt.Sprintf("task-%d", int(h)) }

// Record is one step of a run.
type Record struct {
	At     time.Duration
	Effect saga.Effect
	Task   saga.Task // set for Fork
}

func (r Record) Kind() saga.Kind {
	if r.Effect == nil {
		return None
	}
	return r.Effect.Kind()
}

// Simulator is a deterministic interpreter. Take consumes the next scripted
// event and moves the clock to it. Every Call is a timer that moves the clock
// by its single time.Duration argument. A Race between a Take and a timer is
// won by the next event only if it arrives strictly before the timer fires.
type Simulator struct {
	MaxSteps int // default: 1000
	Records  []Record

	events []Event
	next   int
	now    time.Duration
	tasks  int
}

func NewSimulator(events ...Event) *Simulator {
	return &Simulator{MaxSteps: 1000, events: events}
}

// Now is the current virtual time.
func (sim *Simulator) Now() time.Duration { return sim.now }

// Run drives seq until it finishes, a Take finds no event left, or MaxSteps
// steps have been taken. Running out of events is not an error.
func (sim *Simulator) Run(seq *saga.Sequence) error {
	eff, ok, err := seq.Resume(nil)
	for steps := 0; ok && err == nil; steps++ {
		if steps >= sim.MaxSteps {
			return fmt.Errorf("%w: %s after %d steps", ErrStepLimit, seq.Name(), steps)
		}

		sim.Records = append(sim.Records, Record{At: sim.now, Effect: eff})
		if eff == nil {
			eff, ok, err = seq.Resume(nil)
			continue
		}

		res, exhausted, perr := sim.perform(eff)
		if exhausted {
			// the unanswered Take is not part of the run
			sim.Records = sim.Records[:len(sim.Records)-1]
			return nil
		}
		if perr != nil {
			return seq.ResumeWithError(perr)
		}
		eff, ok, err = seq.Resume(res)
	}
	return err
}

func (sim *Simulator) perform(eff saga.Effect) (res any, exhausted bool, err error) {
	switch eff := eff.(type) {
	case saga.Take:
		ev, ok := sim.take()
		return ev, !ok, nil
	case saga.Fork:
		sim.tasks++
		h := TaskHandle(sim.tasks)
		sim.Records[len(sim.Records)-1].Task = h
		return h, false, nil
	case saga.Cancel:
		return nil, false, nil
	case saga.Call:
		d, err := durationOf(eff)
		if err != nil {
			return nil, false, err
		}
		sim.now += d
		return true, false, nil
	case saga.Race:
		return sim.race(eff)
	default:
		return nil, false, fmt.Errorf("%w: %v", ErrUnsupported, eff)
	}
}

func (sim *Simulator) take() (any, bool) {
	if sim.next >= len(sim.events) {
		return nil, false
	}
	ev := sim.events[sim.next]
	sim.next++
	if ev.At > sim.now {
		sim.now = ev.At
	}
	return ev.Action, true
}

func (sim *Simulator) race(r saga.Race) (any, bool, error) {
	timer, ok := r.Branch(saga.RaceDebounced)
	call, isCall := timer.(saga.Call)
	if !ok || !isCall {
		return nil, false, fmt.Errorf("%w: race without a timer branch: %v", ErrUnsupported, r)
	}
	d, err := durationOf(call)
	if err != nil {
		return nil, false, err
	}

	deadline := sim.now + d
	if sim.next < len(sim.events) && sim.events[sim.next].At < deadline {
		ev, _ := sim.take()
		return saga.RaceOutcome{Winner: saga.RaceAction, Value: ev}, false, nil
	}
	sim.now = deadline
	return saga.RaceOutcome{Winner: saga.RaceDebounced, Value: true}, false, nil
}

func durationOf(call saga.Call) (time.Duration, error) {
	if len(call.Args) != 1 {
		return 0, fmt.Errorf("%w: timer call with %d args", ErrUnsupported, len(call.Args))
	}
	return helper.GetTypedValueOf[time.Duration](func() (any, error) { return call.Args[0], nil })
}

// Kinds lists the kind of every recorded step, None for empty steps.
func (sim *Simulator) Kinds() []saga.Kind {
	kinds := make([]saga.Kind, len(sim.Records))
	for i, r := range sim.Records {
		kinds[i] = r.Kind()
	}
	return kinds
}

// Forks lists the recorded Fork steps in order.
func (sim *Simulator) Forks() []Record {
	return sim.recordsOf(saga.KindFork)
}

// Cancels lists the recorded Cancel steps in order.
func (sim *Simulator) Cancels() []Record {
	return sim.recordsOf(saga.KindCancel)
}

func (sim *Simulator) recordsOf(kind saga.Kind) []Record {
	var out []Record
	for _, r := range sim.Records {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}
