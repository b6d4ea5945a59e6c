package tree

import "fmt"

// Placement is the building -> floor -> room choice made when adding a resident.
// Changing an upstream level clears every level below it.
type Placement struct {
	BuildingID string `json:"building_id"`
	FloorID    string `json:"floor_id"`
	RoomID     string `json:"room_id"`
}

// WithBuilding selects a building and clears floor and room.
func (p Placement) WithBuilding(id string) Placement {
	if id == p.BuildingID {
		return p
	}
	return Placement{BuildingID: id}
}

// WithFloor selects a floor and clears the room.
func (p Placement) WithFloor(id string) Placement {
	if id == p.FloorID {
		return p
	}
	return Placement{BuildingID: p.BuildingID, FloorID: id}
}

// WithRoom selects a room.
func (p Placement) WithRoom(id string) Placement {
	p.RoomID = id
	return p
}

// Option is one choice of a select control.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PlacementOptions lists the choices at each level for the current placement.
type PlacementOptions struct {
	Buildings []Option `json:"buildings"`
	Floors    []Option `json:"floors"`
	Rooms     []Option `json:"rooms"`
	// NoVacancy is set when a floor is chosen but none of its rooms has space.
	NoVacancy bool `json:"no_vacancy"`
}

// Options derives the selectable choices: floors of the chosen building and
// rooms of the chosen floor that are not full.
func (w *World) Options(p Placement) PlacementOptions {
	var opts PlacementOptions
	for _, b := range w.Buildings {
		opts.Buildings = append(opts.Buildings, Option{ID: b.ID, Label: b.Name})
		if b.ID != p.BuildingID {
			continue
		}
		for _, f := range b.Floors {
			opts.Floors = append(opts.Floors, Option{ID: f.ID, Label: f.Label()})
			if f.ID != p.FloorID {
				continue
			}
			for _, r := range f.Rooms {
				if r.IsFull() {
					continue
				}
				opts.Rooms = append(opts.Rooms, Option{
					ID:    r.ID,
					Label: fmt.Sprintf("ห้อง %s (%s)", r.Number, r.Type.Label()),
				})
			}
			opts.NoVacancy = len(opts.Rooms) == 0
		}
	}
	return opts
}

// CheckPlacement verifies that the placement names a room under the chosen
// floor and building, and that the room has space.
func (w *World) CheckPlacement(p Placement) error {
	if p.BuildingID == "" || p.FloorID == "" || p.RoomID == "" {
		return fmt.Errorf("building, floor and room are required: %w", ErrValidation)
	}
	loc, _, err := w.room(p.RoomID)
	if err != nil {
		return err
	}
	if loc.Building.ID != p.BuildingID || loc.Floor.ID != p.FloorID {
		return fmt.Errorf("room %q under floor %q: %w", p.RoomID, p.FloorID, ErrNotFound)
	}
	if loc.Room.IsFull() {
		return fmt.Errorf("room %s: %w", loc.Room.Number, ErrCapacityExceeded)
	}
	return nil
}
