package tree

import (
	"fmt"
	"slices"

	"house_management/internal/domain"
)

// AddBuilding appends a building.
func (w *World) AddBuilding(name string) (*domain.Building, []Change, error) {
	name, err := required("building name", name)
	if err != nil {
		return nil, nil, err
	}
	b := &domain.Building{ID: w.nextID(), Name: name}
	w.Buildings = append(w.Buildings, b)
	return b, []Change{upsert(buildingRecord(b, len(w.Buildings)-1))}, nil
}

// RenameBuilding changes a building's name.
func (w *World) RenameBuilding(id, name string) ([]Change, error) {
	name, err := required("building name", name)
	if err != nil {
		return nil, err
	}
	b, pos, err := w.building(id)
	if err != nil {
		return nil, err
	}
	b.Name = name
	return []Change{upsert(buildingRecord(b, pos))}, nil
}

// RemoveBuilding deletes a building with its floors, rooms, residents and bills.
func (w *World) RemoveBuilding(id string) ([]Change, error) {
	b, pos, err := w.building(id)
	if err != nil {
		return nil, err
	}
	var ch []Change
	for _, f := range b.Floors {
		ch = append(ch, floorDeletes(f)...)
	}
	ch = append(ch, remove(&domain.BuildingRow{ID: b.ID}))
	w.Buildings = slices.Delete(w.Buildings, pos, pos+1)
	return append(ch, buildingShifts(w.Buildings, pos)...), nil
}

// AddFloor appends a floor to a building. An empty name keeps the default label.
func (w *World) AddFloor(buildingID string, number int, name string) (*domain.Floor, []Change, error) {
	if number < 0 {
		return nil, nil, fmt.Errorf("floor number %d: %w", number, ErrValidation)
	}
	b, _, err := w.building(buildingID)
	if err != nil {
		return nil, nil, err
	}
	f := &domain.Floor{ID: w.nextID(), Number: number, Name: name}
	b.Floors = append(b.Floors, f)
	return f, []Change{upsert(floorRecord(b.ID, f, len(b.Floors)-1))}, nil
}

// RenameFloor sets or clears a floor's custom name.
func (w *World) RenameFloor(id, name string) ([]Change, error) {
	b, f, pos, err := w.floor(id)
	if err != nil {
		return nil, err
	}
	f.Name = name
	return []Change{upsert(floorRecord(b.ID, f, pos))}, nil
}

// RemoveFloor deletes a floor and everything on it.
func (w *World) RemoveFloor(id string) ([]Change, error) {
	b, f, pos, err := w.floor(id)
	if err != nil {
		return nil, err
	}
	ch := floorDeletes(f)
	b.Floors = slices.Delete(b.Floors, pos, pos+1)
	return append(ch, floorShifts(b.ID, b.Floors, pos)...), nil
}

// AddRoom appends an empty room to a floor.
func (w *World) AddRoom(floorID, number string, typ domain.RoomType) (*domain.Room, []Change, error) {
	number, err := required("room number", number)
	if err != nil {
		return nil, nil, err
	}
	if !typ.Valid() {
		return nil, nil, fmt.Errorf("room type %q: %w", typ, ErrValidation)
	}
	_, f, _, err := w.floor(floorID)
	if err != nil {
		return nil, nil, err
	}
	r := &domain.Room{ID: w.nextID(), Number: number, Type: typ, Bills: map[string]domain.BillData{}}
	f.Rooms = append(f.Rooms, r)
	return r, []Change{upsert(roomRecord(f.ID, r, len(f.Rooms)-1))}, nil
}

// RemoveRoom deletes a room. Its residents and bills go with it.
func (w *World) RemoveRoom(id string) ([]Change, error) {
	loc, pos, err := w.room(id)
	if err != nil {
		return nil, err
	}
	ch := roomDeletes(loc.Room)
	loc.Floor.Rooms = slices.Delete(loc.Floor.Rooms, pos, pos+1)
	return append(ch, roomShifts(loc.Floor.ID, loc.Floor.Rooms, pos)...), nil
}
