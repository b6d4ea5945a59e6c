package tree

import "house_management/internal/domain"

func buildingRecord(b *domain.Building, pos int) *domain.BuildingRow {
	return &domain.BuildingRow{ID: b.ID, Name: b.Name, Position: pos}
}

func floorRecord(buildingID string, f *domain.Floor, pos int) *domain.FloorRow {
	row := &domain.FloorRow{ID: f.ID, BuildingID: buildingID, Number: f.Number, Position: pos}
	if f.Name != "" {
		name := f.Name
		row.Name = &name
	}
	return row
}

func roomRecord(floorID string, r *domain.Room, pos int) *domain.RoomRow {
	return &domain.RoomRow{ID: r.ID, FloorID: floorID, Number: r.Number, Type: r.Type, Position: pos}
}

func residentRecord(roomID string, res domain.Resident, pos int) *domain.ResidentRow {
	return &domain.ResidentRow{ID: res.ID, RoomID: roomID, Name: res.Name, Position: pos}
}

func billRecord(roomID, period string, b domain.BillData) *domain.BillRow {
	b = b.Clone()
	return &domain.BillRow{
		ID:               domain.BillID(roomID, period),
		RoomID:           roomID,
		Period:           period,
		Water:            b.Water,
		Electricity:      b.Electricity,
		WaterUnits:       b.WaterUnits,
		ElectricityUnits: b.ElectricityUnits,
	}
}

func userRecord(u *domain.User) *domain.UserRow {
	return &domain.UserRow{ID: u.ID, Username: u.Username, Password: u.Password, Role: u.Role, Name: u.Name}
}

// roomDeletes returns the deletes for a room and everything it contains.
func roomDeletes(r *domain.Room) []Change {
	var ch []Change
	for _, res := range r.Residents {
		ch = append(ch, remove(&domain.ResidentRow{ID: res.ID}))
	}
	for period := range r.Bills {
		ch = append(ch, remove(&domain.BillRow{ID: domain.BillID(r.ID, period)}))
	}
	return append(ch, remove(&domain.RoomRow{ID: r.ID}))
}

func floorDeletes(f *domain.Floor) []Change {
	var ch []Change
	for _, r := range f.Rooms {
		ch = append(ch, roomDeletes(r)...)
	}
	return append(ch, remove(&domain.FloorRow{ID: f.ID}))
}

// The shift helpers re-upsert the siblings after a removed index so stored
// positions stay dense and match memory order.

func buildingShifts(bs []*domain.Building, from int) []Change {
	var ch []Change
	for i := from; i < len(bs); i++ {
		ch = append(ch, upsert(buildingRecord(bs[i], i)))
	}
	return ch
}

func floorShifts(buildingID string, fs []*domain.Floor, from int) []Change {
	var ch []Change
	for i := from; i < len(fs); i++ {
		ch = append(ch, upsert(floorRecord(buildingID, fs[i], i)))
	}
	return ch
}

func roomShifts(floorID string, rs []*domain.Room, from int) []Change {
	var ch []Change
	for i := from; i < len(rs); i++ {
		ch = append(ch, upsert(roomRecord(floorID, rs[i], i)))
	}
	return ch
}

func residentShifts(roomID string, rs []domain.Resident, from int) []Change {
	var ch []Change
	for i := from; i < len(rs); i++ {
		ch = append(ch, upsert(residentRecord(roomID, rs[i], i)))
	}
	return ch
}
