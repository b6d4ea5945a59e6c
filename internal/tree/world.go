// Package tree holds the in-memory Building -> Floor -> Room -> Resident/Bill
// aggregate and the mutations applied to it.
//
// Mutations are methods on *World. They validate their targets, change the
// tree in place and return the Changes the caller must push to the remote
// table store. They never perform I/O themselves.
package tree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"house_management/internal/domain"
)

// Change is one remote write produced by a mutation
type Change struct {
	Table  string
	Action domain.Action
	Record domain.Record
}

func upsert(rec domain.Record) Change {
	return Change{Table: rec.TableName(), Action: domain.ActionUpsert, Record: rec}
}

func remove(rec domain.Record) Change {
	return Change{Table: rec.TableName(), Action: domain.ActionDelete, Record: rec}
}

// World is the aggregate root: every building and every console account.
type World struct {
	Buildings []*domain.Building
	Users     []*domain.User
	Tariff    domain.Tariff

	// NewID assigns ids to created entities.
	NewID func() string
}

// New returns an empty world that assigns uuid ids.
func New(tariff domain.Tariff) *World {
	return &World{Tariff: tariff, NewID: uuid.NewString}
}

// Location is where a room or resident sits in the tree.
type Location struct {
	Building *domain.Building
	Floor    *domain.Floor
	Room     *domain.Room
}

func (w *World) nextID() string {
	if w.NewID == nil {
		return uuid.NewString()
	}
	return w.NewID()
}

func (w *World) building(id string) (*domain.Building, int, error) {
	for i, b := range w.Buildings {
		if b.ID == id {
			return b, i, nil
		}
	}
	return nil, -1, fmt.Errorf("building %q: %w", id, ErrNotFound)
}

func (w *World) floor(id string) (*domain.Building, *domain.Floor, int, error) {
	for _, b := range w.Buildings {
		for i, f := range b.Floors {
			if f.ID == id {
				return b, f, i, nil
			}
		}
	}
	return nil, nil, -1, fmt.Errorf("floor %q: %w", id, ErrNotFound)
}

func (w *World) room(id string) (Location, int, error) {
	for _, b := range w.Buildings {
		for _, f := range b.Floors {
			for i, r := range f.Rooms {
				if r.ID == id {
					return Location{Building: b, Floor: f, Room: r}, i, nil
				}
			}
		}
	}
	return Location{}, -1, fmt.Errorf("room %q: %w", id, ErrNotFound)
}

// Room returns the location of a room.
func (w *World) Room(id string) (Location, error) {
	loc, _, err := w.room(id)
	return loc, err
}

// FindResident returns the resident and the room that currently holds it.
func (w *World) FindResident(id string) (domain.Resident, Location, error) {
	for _, b := range w.Buildings {
		for _, f := range b.Floors {
			for _, r := range f.Rooms {
				for _, res := range r.Residents {
					if res.ID == id {
						return res, Location{Building: b, Floor: f, Room: r}, nil
					}
				}
			}
		}
	}
	return domain.Resident{}, Location{}, fmt.Errorf("resident %q: %w", id, ErrNotFound)
}

// Bill reads the bill of a room for a period; a missing record is zero valued.
func (w *World) Bill(roomID, period string) (domain.BillData, error) {
	loc, _, err := w.room(roomID)
	if err != nil {
		return domain.BillData{}, err
	}
	return loc.Room.Bill(period).Clone(), nil
}

// CloneBuildings returns a deep copy of the building list.
func (w *World) CloneBuildings() []*domain.Building {
	out := make([]*domain.Building, len(w.Buildings))
	for i, b := range w.Buildings {
		out[i] = b.Clone()
	}
	return out
}

// Occupancy summarises one building.
type Occupancy struct {
	BuildingID string `json:"building_id"`
	Name       string `json:"name"`
	Rooms      int    `json:"rooms"`
	Capacity   int    `json:"capacity"`
	Occupied   int    `json:"occupied"`
	Vacant     int    `json:"vacant"`
}

// Occupancy counts capacity and residents per building.
func (w *World) Occupancy() []Occupancy {
	out := make([]Occupancy, 0, len(w.Buildings))
	for _, b := range w.Buildings {
		o := Occupancy{BuildingID: b.ID, Name: b.Name}
		for _, f := range b.Floors {
			for _, r := range f.Rooms {
				o.Rooms++
				o.Capacity += r.Capacity()
				o.Occupied += len(r.Residents)
			}
		}
		o.Vacant = o.Capacity - o.Occupied
		out = append(out, o)
	}
	return out
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%s is required: %w", field, ErrValidation)
	}
	return v, nil
}
