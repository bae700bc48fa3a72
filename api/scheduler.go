/*
scheduler.go - Remote document poll loop

PURPOSE:
  Periodically re-reads the document store and logs when the revision
  moved. The server keeps no in-memory copy of the plan, so this is the
  only piece that has to notice out-of-band writes (another device
  pushing through the same store). The transport stays opaque: the loop
  looks at the envelope, never inside the payload.

CONFIGURATION:
  - Interval: How often to check (config SYNC_INTERVAL)
  - Enabled: Whether the loop runs at all

USAGE:
  scheduler := NewSyncScheduler(store, cfg.SyncInterval)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - document/document.go: Revision semantics
  - config/config.go: Interval configuration
*/
package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/warp/cashplan/document"
)

// SyncScheduler watches the document store for revision changes.
type SyncScheduler struct {
	Store    document.Store
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	// lastRev has its own lock: Stop holds mu across wg.Wait while a
	// poll may still be running, so the poll must never take mu.
	revMu   sync.Mutex
	lastRev string
}

// NewSyncScheduler creates a scheduler polling at the given interval.
func NewSyncScheduler(store document.Store, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		Store:    store,
		Interval: interval,
		Enabled:  true,
		stop:     make(chan bool),
	}
}

// Start begins the poll loop.
func (ss *SyncScheduler) Start() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.Enabled {
		log.Println("[Sync] Disabled, not starting")
		return
	}

	ss.ticker = time.NewTicker(ss.Interval)
	ss.wg.Add(1)

	go ss.run()

	log.Printf("[Sync] Started with poll interval: %v", ss.Interval)
}

// Stop stops the poll loop.
func (ss *SyncScheduler) Stop() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.ticker != nil {
		ss.ticker.Stop()
		close(ss.stop)
		ss.wg.Wait()
		log.Println("[Sync] Stopped")
	}
}

func (ss *SyncScheduler) run() {
	defer ss.wg.Done()

	// Prime immediately so the first tick has something to compare to.
	ss.checkRevision()

	for {
		select {
		case <-ss.ticker.C:
			ss.checkRevision()
		case <-ss.stop:
			return
		}
	}
}

func (ss *SyncScheduler) checkRevision() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc, err := ss.Store.Load(ctx)
	if errors.Is(err, document.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("[Sync] Failed to poll document: %v", err)
		return
	}

	ss.revMu.Lock()
	defer ss.revMu.Unlock()
	if ss.lastRev != "" && ss.lastRev != doc.Rev {
		log.Printf("[Sync] Plan document changed: rev %s -> %s (updated %s)",
			ss.lastRev, doc.Rev, doc.UpdatedAt.Format(time.RFC3339))
	}
	ss.lastRev = doc.Rev
}

// RunNow triggers an immediate check (for testing/admin).
func (ss *SyncScheduler) RunNow() {
	ss.checkRevision()
}
