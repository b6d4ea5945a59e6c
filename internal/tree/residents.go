package tree

import (
	"fmt"
	"slices"
	"strings"

	"house_management/internal/domain"
)

// AddResident places a new resident in a room that still has space.
func (w *World) AddResident(roomID, name string) (domain.Resident, []Change, error) {
	name, err := required("resident name", name)
	if err != nil {
		return domain.Resident{}, nil, err
	}
	loc, _, err := w.room(roomID)
	if err != nil {
		return domain.Resident{}, nil, err
	}
	if loc.Room.IsFull() {
		return domain.Resident{}, nil, fmt.Errorf("room %s: %w", loc.Room.Number, ErrCapacityExceeded)
	}
	res := domain.Resident{ID: w.nextID(), Name: name}
	loc.Room.Residents = append(loc.Room.Residents, res)
	return res, []Change{upsert(residentRecord(loc.Room.ID, res, len(loc.Room.Residents)-1))}, nil
}

// MoveResident takes a resident out of one room and appends it to another.
// A full destination leaves both rooms untouched.
func (w *World) MoveResident(residentID, fromRoomID, toRoomID string) ([]Change, error) {
	from, _, err := w.room(fromRoomID)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(from.Room.Residents, func(r domain.Resident) bool { return r.ID == residentID })
	if idx < 0 {
		return nil, fmt.Errorf("resident %q in room %q: %w", residentID, fromRoomID, ErrNotFound)
	}
	to, _, err := w.room(toRoomID)
	if err != nil {
		return nil, err
	}
	if from.Room == to.Room {
		return nil, nil
	}
	if to.Room.IsFull() {
		return nil, fmt.Errorf("room %s: %w", to.Room.Number, ErrCapacityExceeded)
	}

	res := from.Room.Residents[idx]
	from.Room.Residents = slices.Delete(from.Room.Residents, idx, idx+1)
	to.Room.Residents = append(to.Room.Residents, res)

	// Independent writes: leave the old room, close its gap, then join the new one.
	ch := []Change{remove(&domain.ResidentRow{ID: res.ID})}
	ch = append(ch, residentShifts(from.Room.ID, from.Room.Residents, idx)...)
	return append(ch, upsert(residentRecord(to.Room.ID, res, len(to.Room.Residents)-1))), nil
}

// RenameResident changes a resident's name in place.
func (w *World) RenameResident(id, name string) ([]Change, error) {
	name, err := required("resident name", name)
	if err != nil {
		return nil, err
	}
	_, loc, err := w.FindResident(id)
	if err != nil {
		return nil, err
	}
	for i := range loc.Room.Residents {
		if loc.Room.Residents[i].ID == id {
			loc.Room.Residents[i].Name = name
			return []Change{upsert(residentRecord(loc.Room.ID, loc.Room.Residents[i], i))}, nil
		}
	}
	return nil, fmt.Errorf("resident %q: %w", id, ErrNotFound)
}

// RemoveResident deletes a resident from whichever room holds it.
func (w *World) RemoveResident(id string) ([]Change, error) {
	_, loc, err := w.FindResident(id)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(loc.Room.Residents, func(r domain.Resident) bool { return r.ID == id })
	loc.Room.Residents = slices.Delete(loc.Room.Residents, idx, idx+1)
	return append([]Change{remove(&domain.ResidentRow{ID: id})}, residentShifts(loc.Room.ID, loc.Room.Residents, idx)...), nil
}

// ResidentRow is a resident flattened with its location, for table views.
type ResidentRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BuildingID   string `json:"building_id"`
	BuildingName string `json:"building_name"`
	FloorID      string `json:"floor_id"`
	FloorName    string `json:"floor_name"`
	RoomID       string `json:"room_id"`
	RoomNumber   string `json:"room_number"`
}

// ResidentRows flattens every resident in tree order.
func (w *World) ResidentRows() []ResidentRow {
	var rows []ResidentRow
	for _, b := range w.Buildings {
		for _, f := range b.Floors {
			for _, r := range f.Rooms {
				for _, res := range r.Residents {
					rows = append(rows, ResidentRow{
						ID:           res.ID,
						Name:         res.Name,
						BuildingID:   b.ID,
						BuildingName: b.Name,
						FloorID:      f.ID,
						FloorName:    f.Label(),
						RoomID:       r.ID,
						RoomNumber:   r.Number,
					})
				}
			}
		}
	}
	return rows
}

// FilterResidents keeps rows whose name or room number contains term, ignoring case.
func FilterResidents(rows []ResidentRow, term string) []ResidentRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]ResidentRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), term) || strings.Contains(strings.ToLower(r.RoomNumber), term) {
			out = append(out, r)
		}
	}
	return out
}
