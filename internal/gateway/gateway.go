// Package gateway moves data between the in-memory tree and the remote table
// store: one parallel load of the six tables at startup, then a queue of
// single-row writes drained by one worker.
package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"house_management/internal/domain"
	"house_management/internal/tablestore"
)

// ErrRemoteUnavailable marks a store that is unconfigured or could not be reached.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// Options tunes the write queue.
type Options struct {
	QueueSize   int           // Buffered writes before new ones are dropped
	MaxAttempts int           // Tries per write, including the first
	RetryWait   time.Duration // Wait before the second try, doubled after each failure
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.RetryWait <= 0 {
		o.RetryWait = 500 * time.Millisecond
	}
	return o
}

type command struct {
	table  string
	action domain.Action
	record domain.Record
}

// Gateway is safe for concurrent use.
type Gateway struct {
	store   tablestore.Store
	opts    Options
	metrics *Metrics

	mu      sync.Mutex
	queue   chan command
	started bool
	closed  bool
	done    chan struct{}
}

// New creates a gateway. A nil store means the backend is not configured:
// LoadAll returns nil and writes are skipped.
func New(store tablestore.Store, opts Options, metrics *Metrics) *Gateway {
	opts = opts.withDefaults()
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Gateway{
		store:   store,
		opts:    opts,
		metrics: metrics,
		queue:   make(chan command, opts.QueueSize),
		done:    make(chan struct{}),
	}
}

// Configured reports whether a backend store is attached.
func (g *Gateway) Configured() bool {
	return g.store != nil
}

// LoadAll reads the six tables in parallel. A table that fails to load is
// logged and left empty. It returns nil when the store is not configured or no
// table could be read, in which case the caller uses its seed data.
func (g *Gateway) LoadAll(ctx context.Context) *domain.Snapshot {
	if !g.Configured() {
		logrus.Warn("Remote store not configured, falling back to seed data")
		return nil
	}

	snap := &domain.Snapshot{}
	errs := make([]error, len(domain.Tables))
	var wg sync.WaitGroup
	for i, table := range domain.Tables {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = g.store.SelectAll(ctx, table, snap.Target(table))
		}()
	}
	wg.Wait()

	failed := 0
	for i, table := range domain.Tables {
		if errs[i] == nil {
			g.metrics.loads.WithLabelValues(table, "ok").Inc()
			continue
		}
		failed++
		g.metrics.loads.WithLabelValues(table, "error").Inc()
		logrus.WithFields(logrus.Fields{
			"table": table,
			"error": errs[i].Error(),
		}).Warn("Failed to load table, using empty list")
		emptyTable(snap, table)
	}
	if failed == len(domain.Tables) {
		logrus.WithError(ErrRemoteUnavailable).Error("Every table failed to load, falling back to seed data")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"users":     len(snap.Users),
		"buildings": len(snap.Buildings),
		"floors":    len(snap.Floors),
		"rooms":     len(snap.Rooms),
		"residents": len(snap.Residents),
		"bills":     len(snap.Bills),
	}).Info("Remote data loaded")
	return snap
}

func emptyTable(snap *domain.Snapshot, table string) {
	switch table {
	case domain.TableUsers:
		snap.Users = nil
	case domain.TableBuildings:
		snap.Buildings = nil
	case domain.TableFloors:
		snap.Floors = nil
	case domain.TableRooms:
		snap.Rooms = nil
	case domain.TableResidents:
		snap.Residents = nil
	case domain.TableBills:
		snap.Bills = nil
	}
}

// Save queues one upsert-by-id or delete-by-id. It never blocks and never
// reports failure to the caller: a full queue drops the write with a log line.
func (g *Gateway) Save(table string, action domain.Action, rec domain.Record) {
	fields := logrus.Fields{"table": table, "action": action, "id": rec.RecordID()}
	if !g.Configured() {
		logrus.WithFields(fields).Debug("Remote store not configured, write skipped")
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		g.metrics.dropped.Inc()
		logrus.WithFields(fields).Error("Sync gateway closed, write dropped")
		return
	}
	select {
	case g.queue <- command{table: table, action: action, record: rec}:
		g.metrics.queueDepth.Set(float64(len(g.queue)))
	default:
		g.metrics.dropped.Inc()
		logrus.WithFields(fields).Error("Sync queue full, write dropped")
	}
}

// Start launches the worker that drains the queue in order. Calls after the
// first, or after Close, do nothing.
func (g *Gateway) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started || g.closed {
		return
	}
	g.started = true
	go func() {
		defer close(g.done)
		for cmd := range g.queue {
			g.metrics.queueDepth.Set(float64(len(g.queue)))
			g.execute(ctx, cmd)
		}
	}()
}

// Close stops accepting writes and waits for the queued ones to finish.
// Without a running worker there is nothing to wait for and it returns at once.
func (g *Gateway) Close() {
	g.mu.Lock()
	if !g.closed {
		g.closed = true
		close(g.queue)
		if !g.started {
			g.started = true
			close(g.done)
			if n := len(g.queue); n > 0 {
				g.metrics.dropped.Add(float64(n))
				logrus.WithField("pending", n).Error("Sync gateway closed before start, queued writes dropped")
			}
		}
	}
	g.mu.Unlock()
	<-g.done
}

func (g *Gateway) execute(ctx context.Context, cmd command) {
	fields := logrus.Fields{"table": cmd.table, "action": cmd.action, "id": cmd.record.RecordID()}
	wait := g.opts.RetryWait
	var err error
retry:
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		if err = g.apply(ctx, cmd); err == nil {
			g.metrics.writes.WithLabelValues(cmd.table, string(cmd.action), "ok").Inc()
			logrus.WithFields(fields).WithField("attempt", attempt).Info("Remote write applied")
			return
		}
		if attempt == g.opts.MaxAttempts {
			break
		}
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Remote write failed, retrying")
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break retry
		case <-time.After(wait):
		}
		wait *= 2
	}
	// Local state is kept; the remote row may now differ from memory.
	g.metrics.writes.WithLabelValues(cmd.table, string(cmd.action), "error").Inc()
	logrus.WithFields(fields).WithField("error", err.Error()).Error("Remote write failed")
}

func (g *Gateway) apply(ctx context.Context, cmd command) error {
	switch cmd.action {
	case domain.ActionDelete:
		return g.store.Delete(ctx, cmd.table, cmd.record.RecordID())
	default:
		return g.store.Upsert(ctx, cmd.record)
	}
}
