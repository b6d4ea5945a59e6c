package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_management/internal/domain"
	"house_management/internal/tree"
)

type saved struct {
	table  string
	action domain.Action
	id     string
}

type recorder struct {
	mu    sync.Mutex
	saves []saved
}

func (r *recorder) Save(table string, action domain.Action, rec domain.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, saved{table: table, action: action, id: rec.RecordID()})
}

func (r *recorder) all() []saved {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]saved(nil), r.saves...)
}

var tariff = domain.Tariff{WaterUnitPrice: 18, ElectricityUnitPrice: 8}

func newConsole(t *testing.T) (*Console, *recorder) {
	t.Helper()
	rec := &recorder{}
	return New(tree.Seed(tariff), rec), rec
}

func TestMoveResidentPushesDeleteThenUpsert(t *testing.T) {
	c, rec := newConsole(t)

	require.NoError(t, c.MoveResident("res-1", "b1-f1-r01", "b1-f2-r01"))

	assert.Equal(t, []saved{
		{domain.TableResidents, domain.ActionDelete, "res-1"},
		{domain.TableResidents, domain.ActionUpsert, "res-1"},
	}, rec.all())

	_, roomID, err := c.FindResident("res-1")
	require.NoError(t, err)
	assert.Equal(t, "b1-f2-r01", roomID)
}

func TestFailedMutationPushesNothing(t *testing.T) {
	c, rec := newConsole(t)

	err := c.MoveResident("res-1", "b1-f1-r01", "b1-f1-r02") // DOUBLE room already holding two
	require.ErrorIs(t, err, tree.ErrCapacityExceeded)

	err = c.RenameResident("missing", "x")
	require.ErrorIs(t, err, tree.ErrNotFound)

	assert.Empty(t, rec.all())
}

func TestUpdateBillThroughConsole(t *testing.T) {
	c, rec := newConsole(t)

	units := 120.0
	bill, err := c.UpdateBill("b1-f1-r01", "2024-01", domain.BillPatch{ElectricityUnits: &units})
	require.NoError(t, err)
	assert.Equal(t, 960.0, bill.Electricity)

	got, err := c.Bill("b1-f1-r01", "2024-01")
	require.NoError(t, err)
	require.NotNil(t, got.ElectricityUnits)
	assert.Equal(t, 120.0, *got.ElectricityUnits)

	assert.Equal(t, []saved{{domain.TableBills, domain.ActionUpsert, "b1-f1-r01_2024-01"}}, rec.all())
}

func TestBuildingsReturnsCopy(t *testing.T) {
	c, _ := newConsole(t)

	bs := c.Buildings()
	bs[0].Name = "changed"
	bs[0].Floors[0].Rooms[0].Residents = nil

	again := c.Buildings()
	assert.Equal(t, "อาคาร A", again[0].Name)
	assert.Len(t, again[0].Floors[0].Rooms[0].Residents, 1)
}

func TestUserLifecycle(t *testing.T) {
	c, rec := newConsole(t)

	u, err := c.AddUser(domain.User{Username: "reader", Password: "secret", Role: domain.RoleWater, Name: "Reader"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Password, "returned account must not carry the password")

	logged, err := c.Authenticate("READER", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = c.Authenticate("reader", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Blank password keeps the old one.
	_, err = c.EditUser(domain.User{ID: u.ID, Username: "reader", Role: domain.RoleElectric, Name: "Reader 2"})
	require.NoError(t, err)
	_, err = c.Authenticate("reader", "secret")
	require.NoError(t, err)

	require.NoError(t, c.RemoveUser(u.ID))
	_, err = c.User(u.ID)
	require.ErrorIs(t, err, tree.ErrNotFound)

	saves := rec.all()
	require.Len(t, saves, 3)
	assert.Equal(t, domain.ActionDelete, saves[2].action)
}

func TestAuthenticateSeedAccounts(t *testing.T) {
	c, _ := newConsole(t)

	for _, tc := range []struct {
		username, password string
		role               domain.Role
	}{
		{"admin", "admin1234", domain.RoleAdmin},
		{"water", "water1234", domain.RoleWater},
		{"electric", "electric1234", domain.RoleElectric},
	} {
		t.Run(tc.username, func(t *testing.T) {
			u, err := c.Authenticate(tc.username, tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.role, u.Role)
		})
	}
}

func TestNilSyncerDropsWrites(t *testing.T) {
	c := New(tree.Seed(tariff), nil)
	_, err := c.AddResident("b1-f2-r01", "ใหม่")
	require.NoError(t, err)
}

func TestConcurrentAddsRespectCapacity(t *testing.T) {
	c, _ := newConsole(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.AddResident("b1-f2-r02", "คนใหม่"); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, success)
}
