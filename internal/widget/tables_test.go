package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house_management/internal/domain"
	"house_management/internal/service"
	"house_management/internal/tree"
)

func newConsole() *service.Console {
	return service.New(tree.Seed(tariff), nil)
}

func TestResidentTableSearch(t *testing.T) {
	rt := NewResidentTable(newConsole(), Always)
	assert.Len(t, rt.Rows(), 8)

	rt.SetSearch("สมชาย")
	rows := rt.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "res-1", rows[0].ID)
	assert.Equal(t, "ชั้น 1", rows[0].FloorName)

	rt.SetSearch("b101") // room number, case-insensitive
	rows = rt.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "res-7", rows[0].ID)
}

func TestResidentTableAddCascade(t *testing.T) {
	console := newConsole()
	rt := NewResidentTable(console, Always)
	rt.OpenAdd()
	rt.SetName("ผู้พักใหม่")
	assert.False(t, rt.CanSubmit())

	rt.SelectBuilding("b1")
	rt.SelectFloor("b1-f1")
	opts := rt.Options()
	assert.Len(t, opts.Buildings, 2)
	assert.Len(t, opts.Floors, 3)
	assert.Empty(t, opts.Rooms, "every first-floor room of building A is full")
	assert.True(t, opts.NoVacancy)

	rt.SelectFloor("b1-f2")
	opts = rt.Options()
	assert.Len(t, opts.Rooms, 4)
	assert.Equal(t, "ห้อง A202 (Double)", opts.Rooms[1].Label)

	rt.SelectRoom("b1-f2-r02")
	assert.True(t, rt.CanSubmit())

	// Changing an upstream level resets the levels below it.
	rt.SelectBuilding("b2")
	assert.Equal(t, tree.Placement{BuildingID: "b2"}, rt.Form().Placement)
	assert.False(t, rt.CanSubmit())
	_, err := rt.Submit()
	require.ErrorIs(t, err, ErrIncomplete)

	rt.SelectFloor("b2-f3")
	rt.SelectRoom("b2-f3-r01")
	added, err := rt.Submit()
	require.NoError(t, err)
	assert.Equal(t, "ผู้พักใหม่", added.Name)
	assert.Equal(t, ModeClosed, rt.Form().Mode)

	rt.SetSearch("ผู้พักใหม่")
	rows := rt.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "b2-f3-r01", rows[0].RoomID)
}

func TestResidentTableSubmitRechecksPlacement(t *testing.T) {
	rt := NewResidentTable(newConsole(), Always)
	rt.OpenAdd()
	rt.SetName("x")
	rt.SelectBuilding("b1")
	rt.SelectFloor("b1-f1")
	rt.SelectRoom("b1-f1-r01") // full, not offered but typed in

	_, err := rt.Submit()
	require.ErrorIs(t, err, tree.ErrCapacityExceeded)
	assert.Equal(t, ModeAdd, rt.Form().Mode, "modal stays open on error")
}

func TestResidentTableEditRenamesOnly(t *testing.T) {
	console := newConsole()
	rt := NewResidentTable(console, Always)

	require.NoError(t, rt.OpenEdit("res-2"))
	assert.Equal(t, ModeEdit, rt.Form().Mode)
	rt.SelectBuilding("b2") // ignored in edit mode
	assert.Equal(t, tree.Placement{}, rt.Form().Placement)

	rt.SetName("  ")
	assert.False(t, rt.CanSubmit())
	rt.SetName("ชื่อใหม่")
	renamed, err := rt.Submit()
	require.NoError(t, err)
	assert.Equal(t, "res-2", renamed.ID)

	res, roomID, err := console.FindResident("res-2")
	require.NoError(t, err)
	assert.Equal(t, "ชื่อใหม่", res.Name)
	assert.Equal(t, "b1-f1-r02", roomID)

	require.ErrorIs(t, rt.OpenEdit("missing"), tree.ErrNotFound)
}

func TestResidentTableDelete(t *testing.T) {
	console := newConsole()

	require.ErrorIs(t, NewResidentTable(console, Never).Delete("res-3"), ErrNotConfirmed)
	_, _, err := console.FindResident("res-3")
	require.NoError(t, err)

	require.NoError(t, NewResidentTable(console, Always).Delete("res-3"))
	_, _, err = console.FindResident("res-3")
	require.ErrorIs(t, err, tree.ErrNotFound)
}

func TestUserTableRowsHideSelfDelete(t *testing.T) {
	ut := NewUserTable(newConsole(), "u1", Always)

	rows := ut.Rows()
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Empty(t, r.Password)
		assert.Equal(t, r.ID != "u1", r.CanDelete)
	}

	ut.SetSearch("WATER")
	rows = ut.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "u2", rows[0].ID)
	assert.Equal(t, "เจ้าหน้าที่จดมิเตอร์น้ำ", rows[0].RoleLabel)
}

func TestUserTableDelete(t *testing.T) {
	console := newConsole()
	ut := NewUserTable(console, "u1", Always)

	require.ErrorIs(t, ut.Delete("u1"), ErrSelfDelete)
	require.ErrorIs(t, NewUserTable(console, "u1", Never).Delete("u2"), ErrNotConfirmed)
	require.NoError(t, ut.Delete("u2"))
	assert.Len(t, console.Users(), 2)
}

func TestUserTableSubmit(t *testing.T) {
	console := newConsole()
	ut := NewUserTable(console, "u1", Always)

	ut.OpenAdd()
	assert.Equal(t, domain.RoleWater, ut.Form().Role)
	ut.SetFields("reader2", "", "Reader", domain.RoleElectric)
	assert.False(t, ut.CanSubmit(), "password is required when adding")

	ut.SetFields("reader2", "pw", "Reader", domain.RoleElectric)
	u, err := ut.Submit()
	require.NoError(t, err)
	assert.Equal(t, domain.RoleElectric, u.Role)

	require.NoError(t, ut.OpenEdit(u.ID))
	f := ut.Form()
	assert.Empty(t, f.Password)
	ut.SetFields(f.Username, "", "Reader Two", f.Role)
	assert.True(t, ut.CanSubmit(), "password is optional when editing")
	_, err = ut.Submit()
	require.NoError(t, err)

	_, err = console.Authenticate("reader2", "pw")
	require.NoError(t, err)

	ut.OpenAdd()
	ut.SetFields("ADMIN", "x", "Dup", domain.RoleAdmin)
	_, err = ut.Submit()
	require.ErrorIs(t, err, tree.ErrValidation)
}
