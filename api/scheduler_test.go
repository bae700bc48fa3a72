package api_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/warp/cashplan/api"
	"github.com/warp/cashplan/document"
)

// blockingStore parks every Load until release is closed, signalling
// entry so a test can act while a poll is in flight.
type blockingStore struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingStore) Load(_ context.Context) (document.Document, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return document.Document{Rev: "rev-1", SchemaVersion: document.CurrentSchemaVersion}, nil
}

func (b *blockingStore) Save(_ context.Context, _ json.RawMessage, _ string) (document.Document, error) {
	return document.Document{}, nil
}

func TestSyncScheduler_StopDuringInFlightPoll(t *testing.T) {
	// GIVEN: a poll blocked inside Store.Load
	// WHEN: Stop is called before the poll finishes
	// THEN: Stop returns once the poll completes; it must not hold a
	//       lock the poll goroutine needs to finish
	bs := &blockingStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	scheduler := api.NewSyncScheduler(bs, time.Hour)
	scheduler.Start()

	<-bs.entered // the priming poll is now parked in Load

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()

	// Let Stop reach its wait while the poll is still parked.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-stopped:
		t.Fatal("Stop returned while a poll was still in flight")
	default:
	}

	close(bs.release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop never returned after the in-flight poll completed")
	}
}

func TestSyncScheduler_RunNowTracksRevision(t *testing.T) {
	bs := &blockingStore{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	close(bs.release) // never block

	scheduler := api.NewSyncScheduler(bs, time.Hour)
	scheduler.RunNow()
	scheduler.RunNow() // same rev twice, must not panic or wedge
}
