package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_CheckOnChange(t *testing.T) {
	store := newFakeDocStore()
	store.put("/eredi/famiglia.txt", []byte("Eredi:\n1. Maria Rossi (12/05/1970)"))
	scanner := newTestScanner(store)
	holder := NewSnapshotHolder()
	poller := NewPoller(scanner, holder, nil, time.Minute)

	poller.Check(context.Background())

	snapshot := holder.Current()
	require.NotNil(t, snapshot)
	assert.Len(t, snapshot.Documents, 1)
	assert.Len(t, snapshot.Heirs, 1)

	// Snapshot replacement signals refresh.
	select {
	case <-poller.Refresh():
	default:
		t.Fatal("expected a refresh signal")
	}
}

func TestPoller_NoOpWhenFingerprintUnchanged(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("hello"))
	scanner := newTestScanner(store)
	holder := NewSnapshotHolder()
	poller := NewPoller(scanner, holder, nil, time.Minute)

	poller.Check(context.Background())
	first := holder.Current()
	require.NotNil(t, first)
	<-poller.Refresh()

	// Nothing changed in the store, so the snapshot pointer is untouched
	// and no refresh is signalled.
	poller.Check(context.Background())
	assert.Same(t, first, holder.Current())
	select {
	case <-poller.Refresh():
		t.Fatal("unexpected refresh signal")
	default:
	}
}

func TestPoller_RescansOnModification(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("hello"))
	scanner := newTestScanner(store)
	holder := NewSnapshotHolder()
	poller := NewPoller(scanner, holder, nil, time.Minute)

	poller.Check(context.Background())
	first := holder.Current()
	<-poller.Refresh()

	store.put("/a.txt", []byte("hello again"))
	poller.Check(context.Background())

	second := holder.Current()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, "hello again", second.Documents[0].Text)
}

func TestPoller_UnreachableStoreKeepsSnapshot(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("hello"))
	scanner := newTestScanner(store)
	holder := NewSnapshotHolder()
	poller := NewPoller(scanner, holder, nil, time.Minute)

	poller.Check(context.Background())
	first := holder.Current()
	require.NotNil(t, first)
	<-poller.Refresh()

	// While the store is unreachable the last good snapshot stays current.
	store.mu.Lock()
	store.listErr = errors.New("network down")
	store.mu.Unlock()
	poller.Check(context.Background())
	assert.Same(t, first, holder.Current())
}

func TestPoller_RefreshSignalCoalesces(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("v1"))
	scanner := newTestScanner(store)
	holder := NewSnapshotHolder()
	poller := NewPoller(scanner, holder, nil, time.Minute)

	// Two replacements with no reader in between leave exactly one
	// pending signal.
	poller.Check(context.Background())
	store.put("/a.txt", []byte("v2"))
	poller.Check(context.Background())

	select {
	case <-poller.Refresh():
	default:
		t.Fatal("expected a refresh signal")
	}
	select {
	case <-poller.Refresh():
		t.Fatal("refresh signals should coalesce")
	default:
	}
}

func TestPoller_StartStop(t *testing.T) {
	store := newFakeDocStore()
	scanner := newTestScanner(store)
	poller := NewPoller(scanner, NewSnapshotHolder(), nil, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- poller.Start(context.Background()) }()

	time.Sleep(30 * time.Millisecond)
	poller.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPoller_StartHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPoller(newTestScanner(newFakeDocStore()), NewSnapshotHolder(), nil, time.Minute)

	done := make(chan error, 1)
	go func() { done <- poller.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}
