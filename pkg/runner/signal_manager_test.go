package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalManager_ResetAndStop(t *testing.T) {
	sm := NewSignalManager(context.Background())
	defer sm.Stop()

	first := sm.Context()
	assert.NoError(t, first.Err())

	sm.Reset()
	second := sm.Context()
	assert.NotEqual(t, first, second)
	assert.ErrorIs(t, first.Err(), context.Canceled, "Reset releases the old listener")
	assert.NoError(t, second.Err())

	sm.Stop()
	assert.ErrorIs(t, second.Err(), context.Canceled)
}

func TestSignalManager_FollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sm := NewSignalManager(parent)
	defer sm.Stop()

	cancel()
	select {
	case <-sm.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("session context did not end with its parent")
	}
}

func TestSignalManager_CheckRaceWaitsForWindow(t *testing.T) {
	sm := NewSignalManager(context.Background())
	defer sm.Stop()
	sm.RaceWindow = 30 * time.Millisecond

	start := time.Now()
	sm.CheckRace()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestSignalManager_CheckRaceReturnsWhenCancelled(t *testing.T) {
	sm := NewSignalManager(context.Background())
	sm.RaceWindow = time.Minute
	sm.Stop()

	done := make(chan struct{})
	go func() {
		sm.CheckRace()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CheckRace ignored an already cancelled context")
	}
}
