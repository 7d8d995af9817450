package main

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FetchState is the lifecycle of the billboard collection.
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateLoaded  FetchState = "loaded"
	StateFailed  FetchState = "failed"
)

// BillboardSource supplies raw rows for the whole billboards collection.
// The full collection is always fetched; filtering happens in views.
type BillboardSource interface {
	FetchBillboards(ctx context.Context) ([]RawBillboardRow, error)
}

// BillboardSourceFunc adapts a function to the BillboardSource interface.
type BillboardSourceFunc func(ctx context.Context) ([]RawBillboardRow, error)

func (f BillboardSourceFunc) FetchBillboards(ctx context.Context) ([]RawBillboardRow, error) {
	return f(ctx)
}

// Catalog owns the normalized billboard collection and its fetch lifecycle.
// It is the single source of truth for every view on a screen: a failed or
// empty fetch substitutes the fallback dataset so views always have
// something to render, and the error coexists with the records.
type Catalog struct {
	source   BillboardSource
	fallback []Billboard
	log      *slog.Logger
	maxAge   time.Duration

	mu        sync.Mutex
	state     FetchState
	records   []Billboard
	index     map[string]int
	lastErr   error
	fetchedAt time.Time
	inflight  chan struct{}
}

func NewCatalog(source BillboardSource, fallback []Billboard, maxAge time.Duration, log *slog.Logger) *Catalog {
	return &Catalog{
		source:   source,
		fallback: fallback,
		log:      log,
		maxAge:   maxAge,
		state:    StateIdle,
		index:    map[string]int{},
	}
}

// Refresh starts one asynchronous fetch and returns a channel closed when
// the attempt settles. Concurrent calls while a fetch is in flight are
// coalesced onto the same attempt. A refresh whose context is cancelled
// before completion never mutates the catalog.
func (c *Catalog) Refresh(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.inflight != nil {
		done := c.inflight
		c.mu.Unlock()
		return done
	}
	done := make(chan struct{})
	c.inflight = done
	previous := c.state
	c.state = StateLoading
	c.mu.Unlock()

	go func() {
		rows, err := c.source.FetchBillboards(ctx)
		c.apply(ctx, previous, rows, err)
		close(done)
	}()
	return done
}

func (c *Catalog) apply(ctx context.Context, previous FetchState, rows []RawBillboardRow, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight = nil

	// The owning screen went away; drop the late completion instead of
	// updating disposed state.
	if ctx.Err() != nil {
		c.state = previous
		return
	}

	if err != nil {
		c.log.Error("billboard fetch failed, serving fallback dataset", "err", err)
		c.state = StateFailed
		c.lastErr = err
		c.replaceRecords(c.fallback)
		c.fetchedAt = time.Now()
		return
	}

	records := make([]Billboard, 0, len(rows))
	for _, row := range rows {
		record, err := normalizeBillboard(row)
		if err != nil {
			c.log.Warn("skipping invalid billboard row", "id", row.ID, "err", err)
			continue
		}
		records = append(records, record)
	}

	// An empty remote collection means "use fallback", not a valid empty
	// marketplace.
	if len(records) == 0 {
		records = c.fallback
	}

	c.state = StateLoaded
	c.lastErr = nil
	c.replaceRecords(records)
	c.fetchedAt = time.Now()
}

// replaceRecords swaps the collection wholesale; records are never patched
// in place. Caller holds c.mu.
func (c *Catalog) replaceRecords(records []Billboard) {
	c.records = records
	c.index = make(map[string]int, len(records))
	for i, record := range records {
		c.index[record.ID] = i
	}
}

// EnsureFresh refreshes when the collection is idle or older than maxAge
// and waits for the attempt, bounded by ctx. Serving handlers call this so
// the first request after startup populates the catalog.
func (c *Catalog) EnsureFresh(ctx context.Context) {
	c.mu.Lock()
	stale := c.state == StateIdle || (c.maxAge > 0 && time.Since(c.fetchedAt) > c.maxAge)
	loading := c.state == StateLoading
	c.mu.Unlock()

	if !stale && !loading {
		return
	}
	select {
	case <-c.Refresh(ctx):
	case <-ctx.Done():
	}
}

// GetAll returns the collection resolved for lang, in insertion order.
func (c *Catalog) GetAll(lang Language) []BillboardView {
	c.mu.Lock()
	records := c.records
	c.mu.Unlock()

	views := make([]BillboardView, 0, len(records))
	for _, record := range records {
		views = append(views, record.resolve(lang))
	}
	return views
}

// GetByID resolves a single record for lang.
func (c *Catalog) GetByID(id string, lang Language) (BillboardView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return BillboardView{}, false
	}
	return c.records[i].resolve(lang), true
}

// Markers returns the map marker projection of the collection.
func (c *Catalog) Markers(lang Language) []MapMarker {
	c.mu.Lock()
	records := c.records
	c.mu.Unlock()

	markers := make([]MapMarker, 0, len(records))
	for _, record := range records {
		markers = append(markers, record.marker(lang))
	}
	return markers
}

// Contains reports whether id is present in the current collection.
func (c *Catalog) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.index[id]
	return ok
}

// Records returns the canonical (locale-deferred) collection snapshot.
func (c *Catalog) Records() []Billboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Billboard, len(c.records))
	copy(out, c.records)
	return out
}

// State reports the lifecycle state and, when Failed, the fetch error.
// Failure is non-fatal: the fallback collection is served alongside it.
func (c *Catalog) State() (FetchState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateFailed {
		return c.state, c.lastErr
	}
	return c.state, nil
}
