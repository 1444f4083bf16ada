package saga_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/on-the-ground/saga_ive_go/saga"
	"github.com/on-the-ground/saga_ive_go/saga/sagatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeLatest_CancelsPreviousRun(t *testing.T) {
	sim := sagatest.NewSimulator(events(0, time.Millisecond, "A1", "A2")...)
	require.NoError(t, sim.Run(testConfig().TakeLatest("A", fetchUser)))

	assert.Equal(t, []saga.Kind{
		saga.KindTake, sagatest.None, saga.KindFork,
		saga.KindTake, saga.KindCancel, saga.KindFork,
	}, sim.Kinds())

	forks := sim.Forks()
	require.Len(t, forks, 2)
	cancels := sim.Cancels()
	require.Len(t, cancels, 1)
	assert.Equal(t, saga.Cancel{Task: forks[0].Task}, cancels[0].Effect)
	assert.Equal(t, []any{"A2"}, forks[1].Effect.(saga.Fork).Args)
}

func TestTakeLatest_StepByStep(t *testing.T) {
	seq := saga.TakeLatest("A", fetchUser, "x")

	eff, ok, err := seq.Resume(nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saga.Take{Pattern: "A"}, eff)

	eff, ok, err = seq.Resume("a1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, eff, "no task to cancel on the first event")

	eff, ok, err = seq.Resume(nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []any{"x", "a1"}, eff.(saga.Fork).Args)
	assert.Equal(t, "fork(fetchUser, x, a1)", eff.String())

	eff, _, err = seq.Resume("task-1")
	require.NoError(t, err)
	assert.Equal(t, saga.KindTake, eff.Kind())

	eff, _, err = seq.Resume("a2")
	require.NoError(t, err)
	assert.Equal(t, saga.Cancel{Task: "task-1"}, eff)

	eff, _, err = seq.Resume(nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "a2"}, eff.(saga.Fork).Args)
}

func TestTakeLatest_CancelOncePerSubsequentEvent(t *testing.T) {
	actions := []any{"A1", "A2", "A3", "A4", "A5"}
	sim := sagatest.NewSimulator(events(0, time.Millisecond, actions...)...)
	require.NoError(t, sim.Run(saga.TakeLatest("A", fetchUser)))

	forks := sim.Forks()
	cancels := sim.Cancels()
	require.Len(t, forks, len(actions))
	require.Len(t, cancels, len(actions)-1)
	for i, c := range cancels {
		assert.Equal(t, forks[i].Task, c.Effect.(saga.Cancel).Task)
	}
}

func TestTakeLatest_NilTaskIsNeverCancelled(t *testing.T) {
	seq := saga.TakeLatest("A", fetchUser)
	_, _, err := seq.Resume(nil) // take
	require.NoError(t, err)
	_, _, err = seq.Resume("a1") // no cancel
	require.NoError(t, err)
	_, _, err = seq.Resume(nil) // fork
	require.NoError(t, err)
	_, _, err = seq.Resume(nil) // fork resolved without a handle; take
	require.NoError(t, err)

	eff, ok, err := seq.Resume("a2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, eff)
}

func TestTakeLatest_ResumeWithErrorAtAnyStep(t *testing.T) {
	for steps := 0; steps < 7; steps++ {
		t.Run(fmt.Sprintf("after %d steps", steps), func(t *testing.T) {
			seq := saga.TakeLatest("A", fetchUser)
			var res any
			for i := 0; i < steps; i++ {
				eff, ok, err := seq.Resume(res)
				require.NoError(t, err)
				require.True(t, ok)
				res = resultFor(eff, i)
			}

			boom := errors.New("task runtime gone")
			assert.ErrorIs(t, seq.ResumeWithError(boom), boom)

			_, ok, err := seq.Resume(res)
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestTakeLatest_Name(t *testing.T) {
	assert.Equal(t, "takeLatest([A, B], fetchUser)", saga.TakeLatest([2]string{"A", "B"}, fetchUser).Name())
	assert.Equal(t, "takeLatest(42, <nil>)", saga.TakeLatest(42, nil).Name())
}

func TestTakeLatest_EndFinishesWithoutFork(t *testing.T) {
	sim := sagatest.NewSimulator(sagatest.Event{At: 0, Action: saga.End})
	seq := saga.TakeLatest("A", fetchUser)
	require.NoError(t, sim.Run(seq))

	assert.Equal(t, []saga.Kind{saga.KindTake}, sim.Kinds())
	assert.Empty(t, sim.Forks())
	assert.Empty(t, sim.Cancels())
	assert.True(t, seq.Done())
}
