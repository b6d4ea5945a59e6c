package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_management/internal/domain"
)

var errDown = errors.New("down")

// fakeStore serves tables from JSON and records every write in order.
type fakeStore struct {
	mu       sync.Mutex
	tables   map[string]string // Table name to JSON rows; missing tables fail
	failures int               // Writes to fail before succeeding
	ops      []string
	attempts int
}

func (f *fakeStore) SelectAll(_ context.Context, table string, dest any) error {
	rows, ok := f.tables[table]
	if !ok {
		return errDown
	}
	return json.Unmarshal([]byte(rows), dest)
}

func (f *fakeStore) write(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return errDown
	}
	f.ops = append(f.ops, op)
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, rec domain.Record) error {
	return f.write("upsert " + rec.TableName() + " " + rec.RecordID())
}

func (f *fakeStore) Delete(_ context.Context, table, id string) error {
	return f.write("delete " + table + " " + id)
}

func allTables() map[string]string {
	return map[string]string{
		domain.TableUsers:     `[{"id":"u1","username":"admin","role":"ADMIN"}]`,
		domain.TableBuildings: `[{"id":"b1","name":"อาคาร A"}]`,
		domain.TableFloors:    `[{"id":"f1","building_id":"b1","number":1}]`,
		domain.TableRooms:     `[{"id":"r1","floor_id":"f1","number":"A101","type":"SINGLE"}]`,
		domain.TableResidents: `[]`,
		domain.TableBills:     `[]`,
	}
}

func building(id string) domain.Record { return &domain.BuildingRow{ID: id} }

func TestLoadAllUnconfigured(t *testing.T) {
	assert.Nil(t, New(nil, Options{}, nil).LoadAll(context.Background()))
}

func TestLoadAllEveryTableFails(t *testing.T) {
	g := New(&fakeStore{tables: map[string]string{}}, Options{}, nil)
	assert.Nil(t, g.LoadAll(context.Background()))
}

func TestLoadAllPartialFailureLeavesTableEmpty(t *testing.T) {
	tables := allTables()
	delete(tables, domain.TableRooms)
	m := NewMetrics(prometheus.NewRegistry())
	g := New(&fakeStore{tables: tables}, Options{}, m)

	snap := g.LoadAll(context.Background())
	require.NotNil(t, snap)
	assert.Len(t, snap.Buildings, 1)
	assert.Equal(t, "อาคาร A", snap.Buildings[0].Name)
	assert.Len(t, snap.Floors, 1)
	assert.Empty(t, snap.Rooms)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(domain.TableRooms, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(domain.TableUsers, "ok")))
}

func TestSaveAppliesInOrder(t *testing.T) {
	store := &fakeStore{}
	g := New(store, Options{}, nil)
	g.Start(context.Background())

	g.Save(domain.TableResidents, domain.ActionDelete, &domain.ResidentRow{ID: "res-1"})
	g.Save(domain.TableResidents, domain.ActionUpsert, &domain.ResidentRow{ID: "res-1", RoomID: "r2"})
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b9"))
	g.Close()

	assert.Equal(t, []string{
		"delete Residents res-1",
		"upsert Residents res-1",
		"upsert Buildings b9",
	}, store.ops)
}

func TestSaveRetriesWithBackoff(t *testing.T) {
	store := &fakeStore{failures: 2}
	m := NewMetrics(nil)
	g := New(store, Options{MaxAttempts: 3, RetryWait: time.Millisecond}, m)
	g.Start(context.Background())

	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))
	g.Close()

	assert.Equal(t, 3, store.attempts)
	assert.Equal(t, []string{"upsert Buildings b1"}, store.ops)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues(domain.TableBuildings, "ADD", "ok")))
}

func TestSaveGivesUpAfterMaxAttempts(t *testing.T) {
	store := &fakeStore{failures: 10}
	m := NewMetrics(nil)
	g := New(store, Options{MaxAttempts: 2, RetryWait: time.Millisecond}, m)
	g.Start(context.Background())

	g.Save(domain.TableBuildings, domain.ActionDelete, building("b1"))
	g.Save(domain.TableBuildings, domain.ActionDelete, building("b2"))
	g.Close()

	assert.Equal(t, 4, store.attempts)
	assert.Empty(t, store.ops)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.writes.WithLabelValues(domain.TableBuildings, "DELETE", "error")))
}

func TestSaveDropsWhenQueueFull(t *testing.T) {
	store := &fakeStore{}
	m := NewMetrics(nil)
	g := New(store, Options{QueueSize: 1}, m)

	// The worker is not running yet, so only the first write fits.
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b2"))
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b3"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dropped))

	g.Start(context.Background())
	g.Close()
	assert.Equal(t, []string{"upsert Buildings b1"}, store.ops)
}

func TestSaveAfterCloseIsDropped(t *testing.T) {
	store := &fakeStore{}
	m := NewMetrics(nil)
	g := New(store, Options{}, m)
	g.Start(context.Background())
	g.Close()
	g.Close()

	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))
	assert.Empty(t, store.ops)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped))
}

func TestSaveUnconfiguredIsSkipped(t *testing.T) {
	m := NewMetrics(nil)
	g := New(nil, Options{}, m)
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dropped))
}

func TestCloseWithoutStartReturns(t *testing.T) {
	store := &fakeStore{}
	m := NewMetrics(nil)
	g := New(store, Options{}, m)
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))

	closed := make(chan struct{})
	go func() {
		g.Close()
		g.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close blocked without a running worker")
	}

	// A late Start must not revive the closed queue.
	g.Start(context.Background())
	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b2"))
	assert.Empty(t, store.ops)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dropped))
}

func TestStartTwiceRunsOneWorker(t *testing.T) {
	store := &fakeStore{}
	g := New(store, Options{}, nil)
	g.Start(context.Background())
	g.Start(context.Background())

	g.Save(domain.TableBuildings, domain.ActionUpsert, building("b1"))
	g.Save(domain.TableBuildings, domain.ActionDelete, building("b1"))
	g.Close()
	assert.Equal(t, []string{"upsert Buildings b1", "delete Buildings b1"}, store.ops)
}
