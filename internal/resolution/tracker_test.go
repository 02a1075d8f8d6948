package resolution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_BeginSupersedes(t *testing.T) {
	tr := NewTracker()

	ctx1, t1 := tr.Begin(context.Background(), "s")
	ctx2, t2 := tr.Begin(context.Background(), "s")

	assert.False(t, t1.Current())
	assert.True(t, t2.Current())
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())

	t1.Done()
	assert.Equal(t, 1, tr.Len(), "stale ticket must not clear the newer one")
	t2.Done()
	assert.Zero(t, tr.Len())
}

func TestTracker_SessionsAreIndependent(t *testing.T) {
	tr := NewTracker()

	_, a := tr.Begin(context.Background(), "a")
	_, b := tr.Begin(context.Background(), "b")
	assert.True(t, a.Current())
	assert.True(t, b.Current())
}

func TestTracker_ReusedSessionAfterDone(t *testing.T) {
	tr := NewTracker()

	_, first := tr.Begin(context.Background(), "s")
	_, second := tr.Begin(context.Background(), "s")
	second.Done()
	_, third := tr.Begin(context.Background(), "s")

	assert.False(t, first.Current())
	assert.True(t, third.Current())
}

func TestTracker_NilTicket(t *testing.T) {
	var tr *Tracker
	ctx, tk := tr.Begin(context.Background(), "s")
	assert.NotNil(t, ctx)
	assert.True(t, tk.Current())
	tk.Done()

	_, tk = NewTracker().Begin(context.Background(), "")
	assert.Nil(t, tk)
}
