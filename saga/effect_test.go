package saga_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/saga_ive_go/saga"
	"github.com/on-the-ground/saga_ive_go/saga/sagatest"
	"github.com/stretchr/testify/assert"
)

func TestEffect_Strings(t *testing.T) {
	tests := []struct {
		eff  saga.Effect
		kind saga.Kind
		want string
	}{
		{saga.Take{Pattern: []string{"A", "B"}}, saga.KindTake, "take([A, B])"},
		{saga.Fork{Worker: fetchUser, Args: []any{1, "a"}}, saga.KindFork, "fork(fetchUser, 1, a)"},
		{saga.Cancel{Task: "task-3"}, saga.KindCancel, "cancel(task-3)"},
		{saga.Call{Fn: saga.Delay, Args: []any{"x"}}, saga.KindCall, "call(Delay, x)"},
		{saga.EndEffect, saga.KindEnd, "end"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.eff.Kind())
		assert.Equal(t, tt.want, tt.eff.String())
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "take", saga.KindTake.String())
	assert.Equal(t, "race", saga.KindRace.String())
	assert.Equal(t, "none", saga.Kind(0).String())
	assert.Equal(t, "none", sagatest.None.String())
	assert.Equal(t, "kind(42)", saga.Kind(42).String())
}

func TestEnd_IsDistinctEvent(t *testing.T) {
	assert.Equal(t, "END", saga.End.(interface{ String() string }).String())
	assert.NotEqual(t, saga.End, "END")
}

func TestWorkerName_Anonymous(t *testing.T) {
	seq := saga.TakeEvery("A", func(ctx context.Context, args ...any) error { return nil })
	assert.Regexp(t, `^takeEvery\(A, func\d+\)$`, seq.Name())
}
