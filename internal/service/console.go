// Package service serialises access to the entity tree and forwards every
// successful mutation to the sync gateway.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"house_management/internal/domain"
	"house_management/internal/tree"
	"house_management/internal/utils"
)

// Syncer persists one row change. Implementations must not block.
type Syncer interface {
	Save(table string, action domain.Action, rec domain.Record)
}

// ErrInvalidCredentials is returned by Authenticate for an unknown user or bad password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Console owns the world. Mutations update memory first and then queue their
// remote writes; a failed write is never rolled back locally.
type Console struct {
	state lockedWorld
	sync  Syncer
}

// New wraps a world. A nil syncer drops writes.
func New(w *tree.World, s Syncer) *Console {
	c := &Console{sync: s}
	c.state.world = w
	return c
}

func (c *Console) push(changes []tree.Change) {
	if c.sync == nil {
		return
	}
	for _, ch := range changes {
		c.sync.Save(ch.Table, ch.Action, ch.Record)
	}
}

// mutate runs fn under the write lock and queues its changes before releasing
// it, so queue order matches the order of in-memory updates.
func (c *Console) mutate(op string, fn func(w *tree.World) ([]tree.Change, error)) error {
	err := c.state.write(func(w *tree.World) error {
		changes, err := fn(w)
		if err != nil {
			return err
		}
		c.push(changes)
		return nil
	})
	if errors.Is(err, tree.ErrNotFound) {
		logrus.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Warn("Mutation target not found")
	}
	return err
}

// Tariff returns the unit prices in use.
func (c *Console) Tariff() domain.Tariff {
	var t domain.Tariff
	c.state.read(func(w *tree.World) { t = w.Tariff })
	return t
}

// Buildings returns a deep copy of the tree.
func (c *Console) Buildings() []*domain.Building {
	var out []*domain.Building
	c.state.read(func(w *tree.World) { out = w.CloneBuildings() })
	return out
}

// Occupancy summarises capacity per building.
func (c *Console) Occupancy() []tree.Occupancy {
	var out []tree.Occupancy
	c.state.read(func(w *tree.World) { out = w.Occupancy() })
	return out
}

// AddBuilding creates a building.
func (c *Console) AddBuilding(name string) (domain.Building, error) {
	var b domain.Building
	err := c.mutate("add_building", func(w *tree.World) ([]tree.Change, error) {
		nb, ch, err := w.AddBuilding(name)
		if err == nil {
			b = *nb.Clone()
		}
		return ch, err
	})
	return b, err
}

// RenameBuilding renames a building.
func (c *Console) RenameBuilding(id, name string) error {
	return c.mutate("rename_building", func(w *tree.World) ([]tree.Change, error) {
		return w.RenameBuilding(id, name)
	})
}

// RemoveBuilding deletes a building and its contents.
func (c *Console) RemoveBuilding(id string) error {
	return c.mutate("remove_building", func(w *tree.World) ([]tree.Change, error) {
		return w.RemoveBuilding(id)
	})
}

// AddFloor creates a floor in a building.
func (c *Console) AddFloor(buildingID string, number int, name string) (domain.Floor, error) {
	var f domain.Floor
	err := c.mutate("add_floor", func(w *tree.World) ([]tree.Change, error) {
		nf, ch, err := w.AddFloor(buildingID, number, name)
		if err == nil {
			f = *nf.Clone()
		}
		return ch, err
	})
	return f, err
}

// RenameFloor sets a floor's custom name.
func (c *Console) RenameFloor(id, name string) error {
	return c.mutate("rename_floor", func(w *tree.World) ([]tree.Change, error) {
		return w.RenameFloor(id, name)
	})
}

// RemoveFloor deletes a floor and its contents.
func (c *Console) RemoveFloor(id string) error {
	return c.mutate("remove_floor", func(w *tree.World) ([]tree.Change, error) {
		return w.RemoveFloor(id)
	})
}

// AddRoom creates a room on a floor.
func (c *Console) AddRoom(floorID, number string, typ domain.RoomType) (domain.Room, error) {
	var r domain.Room
	err := c.mutate("add_room", func(w *tree.World) ([]tree.Change, error) {
		nr, ch, err := w.AddRoom(floorID, number, typ)
		if err == nil {
			r = *nr.Clone()
		}
		return ch, err
	})
	return r, err
}

// RemoveRoom deletes a room with its residents and bills.
func (c *Console) RemoveRoom(id string) error {
	return c.mutate("remove_room", func(w *tree.World) ([]tree.Change, error) {
		return w.RemoveRoom(id)
	})
}

// Bill reads a room's bill, zero valued when absent.
func (c *Console) Bill(roomID, period string) (domain.BillData, error) {
	var (
		b   domain.BillData
		err error
	)
	c.state.read(func(w *tree.World) { b, err = w.Bill(roomID, period) })
	return b, err
}

// UpdateBill merges a partial bill.
func (c *Console) UpdateBill(roomID, period string, patch domain.BillPatch) (domain.BillData, error) {
	var b domain.BillData
	err := c.mutate("update_bill", func(w *tree.World) ([]tree.Change, error) {
		nb, ch, err := w.UpdateBill(roomID, period, patch)
		b = nb
		return ch, err
	})
	return b, err
}

// MeterReadings lists committed readings of one category for a period.
func (c *Console) MeterReadings(cat domain.Category, period string) []tree.MeterReading {
	var out []tree.MeterReading
	c.state.read(func(w *tree.World) { out = w.MeterReadings(cat, period) })
	return out
}

// AddResident places a resident in a room.
func (c *Console) AddResident(roomID, name string) (domain.Resident, error) {
	var r domain.Resident
	err := c.mutate("add_resident", func(w *tree.World) ([]tree.Change, error) {
		nr, ch, err := w.AddResident(roomID, name)
		r = nr
		return ch, err
	})
	return r, err
}

// MoveResident moves a resident between rooms.
func (c *Console) MoveResident(residentID, fromRoomID, toRoomID string) error {
	return c.mutate("move_resident", func(w *tree.World) ([]tree.Change, error) {
		return w.MoveResident(residentID, fromRoomID, toRoomID)
	})
}

// RenameResident renames a resident.
func (c *Console) RenameResident(id, name string) error {
	return c.mutate("rename_resident", func(w *tree.World) ([]tree.Change, error) {
		return w.RenameResident(id, name)
	})
}

// RemoveResident deletes a resident.
func (c *Console) RemoveResident(id string) error {
	return c.mutate("remove_resident", func(w *tree.World) ([]tree.Change, error) {
		return w.RemoveResident(id)
	})
}

// FindResident returns a resident with its room id.
func (c *Console) FindResident(id string) (domain.Resident, string, error) {
	var (
		res    domain.Resident
		roomID string
		err    error
	)
	c.state.read(func(w *tree.World) {
		var loc tree.Location
		res, loc, err = w.FindResident(id)
		if err == nil {
			roomID = loc.Room.ID
		}
	})
	return res, roomID, err
}

// ResidentRows returns every resident flattened with its location.
func (c *Console) ResidentRows() []tree.ResidentRow {
	var out []tree.ResidentRow
	c.state.read(func(w *tree.World) { out = w.ResidentRows() })
	return out
}

// Options derives the building -> floor -> room choices.
func (c *Console) Options(p tree.Placement) tree.PlacementOptions {
	var out tree.PlacementOptions
	c.state.read(func(w *tree.World) { out = w.Options(p) })
	return out
}

// CheckPlacement validates a placement against the current tree.
func (c *Console) CheckPlacement(p tree.Placement) error {
	var err error
	c.state.read(func(w *tree.World) { err = w.CheckPlacement(p) })
	return err
}

// Users returns every account without passwords.
func (c *Console) Users() []domain.User {
	var out []domain.User
	c.state.read(func(w *tree.World) { out = w.PublicUsers() })
	return out
}

// User returns one account without its password.
func (c *Console) User(id string) (domain.User, error) {
	var (
		u   domain.User
		err error
	)
	c.state.read(func(w *tree.World) { u, err = w.User(id) })
	return u.Public(), err
}

// AddUser hashes the password and creates the account.
func (c *Console) AddUser(u domain.User) (domain.User, error) {
	if err := hashInPlace(&u); err != nil {
		return domain.User{}, err
	}
	var out domain.User
	err := c.mutate("add_user", func(w *tree.World) ([]tree.Change, error) {
		nu, ch, err := w.AddUser(u)
		out = nu
		return ch, err
	})
	return out.Public(), err
}

// EditUser replaces an account. A blank password keeps the current one.
func (c *Console) EditUser(u domain.User) (domain.User, error) {
	if err := hashInPlace(&u); err != nil {
		return domain.User{}, err
	}
	var out domain.User
	err := c.mutate("edit_user", func(w *tree.World) ([]tree.Change, error) {
		nu, ch, err := w.EditUser(u)
		out = nu
		return ch, err
	})
	return out.Public(), err
}

// RemoveUser deletes an account.
func (c *Console) RemoveUser(id string) error {
	return c.mutate("remove_user", func(w *tree.World) ([]tree.Change, error) {
		return w.RemoveUser(id)
	})
}

// Authenticate checks a login and returns the account without its password.
func (c *Console) Authenticate(username, password string) (domain.User, error) {
	var (
		u   domain.User
		err error
	)
	c.state.read(func(w *tree.World) { u, err = w.UserByUsername(username) })
	if err != nil || !utils.CheckPassword(u.Password, password) {
		return domain.User{}, ErrInvalidCredentials
	}
	return u.Public(), nil
}

func hashInPlace(u *domain.User) error {
	if strings.TrimSpace(u.Password) == "" {
		u.Password = ""
		return nil
	}
	hash, err := utils.HashPassword(u.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = hash
	return nil
}
