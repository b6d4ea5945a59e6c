package tree

import (
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"

	"house_management/internal/domain"
)

func byPosition[T any](pos func(T) int) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(pos(a), pos(b)) }
}

// Build assembles a world from the six flat tables. Rows whose parent does not
// resolve are dropped with a warning. Siblings keep their stored position,
// falling back to load order.
func Build(s domain.Snapshot, tariff domain.Tariff) *World {
	w := New(tariff)

	buildings := slices.Clone(s.Buildings)
	slices.SortStableFunc(buildings, byPosition(func(r domain.BuildingRow) int { return r.Position }))
	byBuilding := map[string]*domain.Building{}
	for _, row := range buildings {
		b := &domain.Building{ID: row.ID, Name: row.Name}
		byBuilding[b.ID] = b
		w.Buildings = append(w.Buildings, b)
	}

	floors := slices.Clone(s.Floors)
	slices.SortStableFunc(floors, byPosition(func(r domain.FloorRow) int { return r.Position }))
	byFloor := map[string]*domain.Floor{}
	for _, row := range floors {
		b, ok := byBuilding[row.BuildingID]
		if !ok {
			orphan(domain.TableFloors, row.ID, row.BuildingID)
			continue
		}
		f := &domain.Floor{ID: row.ID, Number: row.Number}
		if row.Name != nil {
			f.Name = *row.Name
		}
		byFloor[f.ID] = f
		b.Floors = append(b.Floors, f)
	}

	rooms := slices.Clone(s.Rooms)
	slices.SortStableFunc(rooms, byPosition(func(r domain.RoomRow) int { return r.Position }))
	byRoom := map[string]*domain.Room{}
	for _, row := range rooms {
		f, ok := byFloor[row.FloorID]
		if !ok {
			orphan(domain.TableRooms, row.ID, row.FloorID)
			continue
		}
		typ := row.Type
		if !typ.Valid() {
			logrus.WithFields(logrus.Fields{"room_id": row.ID, "type": row.Type}).Warn("Unknown room type, treating as SINGLE")
			typ = domain.RoomSingle
		}
		r := &domain.Room{ID: row.ID, Number: row.Number, Type: typ, Bills: map[string]domain.BillData{}}
		byRoom[r.ID] = r
		f.Rooms = append(f.Rooms, r)
	}

	residents := slices.Clone(s.Residents)
	slices.SortStableFunc(residents, byPosition(func(r domain.ResidentRow) int { return r.Position }))
	seen := map[string]bool{}
	for _, row := range residents {
		r, ok := byRoom[row.RoomID]
		if !ok {
			orphan(domain.TableResidents, row.ID, row.RoomID)
			continue
		}
		if seen[row.ID] {
			logrus.WithField("resident_id", row.ID).Warn("Duplicate resident row dropped")
			continue
		}
		seen[row.ID] = true
		r.Residents = append(r.Residents, domain.Resident{ID: row.ID, Name: row.Name})
	}

	for _, row := range s.Bills {
		r, ok := byRoom[row.RoomID]
		if !ok {
			orphan(domain.TableBills, row.ID, row.RoomID)
			continue
		}
		if !domain.ValidPeriod(row.Period) {
			logrus.WithFields(logrus.Fields{"bill_id": row.ID, "period": row.Period}).Warn("Invalid bill period dropped")
			continue
		}
		r.Bills[row.Period] = domain.BillData{
			Water:            row.Water,
			Electricity:      row.Electricity,
			WaterUnits:       row.WaterUnits,
			ElectricityUnits: row.ElectricityUnits,
		}.Clone()
	}

	for _, row := range s.Users {
		w.Users = append(w.Users, &domain.User{
			ID:       row.ID,
			Username: row.Username,
			Password: row.Password,
			Role:     row.Role,
			Name:     row.Name,
		})
	}
	return w
}

func orphan(table, id, parentID string) {
	logrus.WithFields(logrus.Fields{
		"table":     table,
		"id":        id,
		"parent_id": parentID,
	}).Warn("Row references a missing parent, dropped")
}

// Snapshot flattens the world back into the six tables.
func (w *World) Snapshot() domain.Snapshot {
	var s domain.Snapshot
	for _, u := range w.Users {
		s.Users = append(s.Users, *userRecord(u))
	}
	for bi, b := range w.Buildings {
		s.Buildings = append(s.Buildings, *buildingRecord(b, bi))
		for fi, f := range b.Floors {
			s.Floors = append(s.Floors, *floorRecord(b.ID, f, fi))
			for ri, r := range f.Rooms {
				s.Rooms = append(s.Rooms, *roomRecord(f.ID, r, ri))
				for pi, res := range r.Residents {
					s.Residents = append(s.Residents, *residentRecord(r.ID, res, pi))
				}
				periods := make([]string, 0, len(r.Bills))
				for p := range r.Bills {
					periods = append(periods, p)
				}
				slices.Sort(periods)
				for _, p := range periods {
					s.Bills = append(s.Bills, *billRecord(r.ID, p, r.Bills[p]))
				}
			}
		}
	}
	return s
}
