package domain

// Remote table names
const (
	TableUsers     = "Users"
	TableBuildings = "Buildings"
	TableFloors    = "Floors"
	TableRooms     = "Rooms"
	TableResidents = "Residents"
	TableBills     = "Bills"
)

// Tables lists the six tables in load order
var Tables = []string{TableUsers, TableBuildings, TableFloors, TableRooms, TableResidents, TableBills}

// Action is the kind of remote write
type Action string

const (
	ActionUpsert Action = "ADD"    // Insert or update by id
	ActionDelete Action = "DELETE" // Delete by id
)

// Record is a flat row of one remote table
type Record interface {
	TableName() string // Remote table, also used by GORM
	RecordID() string  // Primary key
}

// BuildingRow is a row of the Buildings table
type BuildingRow struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (r *BuildingRow) TableName() string { return TableBuildings }
func (r *BuildingRow) RecordID() string  { return r.ID }

// FloorRow is a row of the Floors table
type FloorRow struct {
	ID         string  `gorm:"primaryKey;size:64" json:"id"`
	BuildingID string  `gorm:"index;size:64;not null" json:"building_id"`
	Number     int     `gorm:"not null" json:"number"`
	Name       *string `json:"name"`
	Position   int     `gorm:"not null;default:0" json:"position"`
}

func (r *FloorRow) TableName() string { return TableFloors }
func (r *FloorRow) RecordID() string  { return r.ID }

// RoomRow is a row of the Rooms table
type RoomRow struct {
	ID       string   `gorm:"primaryKey;size:64" json:"id"`
	FloorID  string   `gorm:"index;size:64;not null" json:"floor_id"`
	Number   string   `gorm:"size:32;not null" json:"number"`
	Type     RoomType `gorm:"size:16;not null" json:"type"`
	Position int      `gorm:"not null;default:0" json:"position"`
}

func (r *RoomRow) TableName() string { return TableRooms }
func (r *RoomRow) RecordID() string  { return r.ID }

// ResidentRow is a row of the Residents table
type ResidentRow struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	RoomID   string `gorm:"index;size:64;not null" json:"room_id"`
	Name     string `gorm:"not null" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (r *ResidentRow) TableName() string { return TableResidents }
func (r *ResidentRow) RecordID() string  { return r.ID }

// BillRow is a row of the Bills table, one per room per period
type BillRow struct {
	ID               string   `gorm:"primaryKey;size:80" json:"id"`
	RoomID           string   `gorm:"index;size:64;not null" json:"room_id"`
	Period           string   `gorm:"size:7;not null" json:"period"`
	Water            float64  `gorm:"not null;default:0" json:"water"`
	Electricity      float64  `gorm:"not null;default:0" json:"electricity"`
	WaterUnits       *float64 `json:"water_units"`
	ElectricityUnits *float64 `json:"electricity_units"`
}

func (r *BillRow) TableName() string { return TableBills }
func (r *BillRow) RecordID() string  { return r.ID }

// BillID derives the bill row id from room and period
func BillID(roomID, period string) string {
	return roomID + "_" + period
}

// UserRow is a row of the Users table
type UserRow struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Username string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password string `json:"password"`
	Role     Role   `gorm:"size:16;not null" json:"role"`
	Name     string `json:"name"`
}

func (r *UserRow) TableName() string { return TableUsers }
func (r *UserRow) RecordID() string  { return r.ID }

// NewRow returns an empty row for the table, nil for an unknown table
func NewRow(table string) Record {
	switch table {
	case TableUsers:
		return &UserRow{}
	case TableBuildings:
		return &BuildingRow{}
	case TableFloors:
		return &FloorRow{}
	case TableRooms:
		return &RoomRow{}
	case TableResidents:
		return &ResidentRow{}
	case TableBills:
		return &BillRow{}
	}
	return nil
}

// AllRows returns one empty row per table, for schema migration
func AllRows() []any {
	rows := make([]any, 0, len(Tables))
	for _, t := range Tables {
		rows = append(rows, NewRow(t))
	}
	return rows
}

// Snapshot holds every row of the six tables
type Snapshot struct {
	Users     []UserRow     `json:"users"`
	Buildings []BuildingRow `json:"buildings"`
	Floors    []FloorRow    `json:"floors"`
	Rooms     []RoomRow     `json:"rooms"`
	Residents []ResidentRow `json:"residents"`
	Bills     []BillRow     `json:"bills"`
}

// Target returns a pointer to the slice holding the table's rows
func (s *Snapshot) Target(table string) any {
	switch table {
	case TableUsers:
		return &s.Users
	case TableBuildings:
		return &s.Buildings
	case TableFloors:
		return &s.Floors
	case TableRooms:
		return &s.Rooms
	case TableResidents:
		return &s.Residents
	case TableBills:
		return &s.Bills
	}
	return nil
}

// Records flattens the snapshot into records, parents before children
func (s *Snapshot) Records() []Record {
	var out []Record
	for i := range s.Users {
		out = append(out, &s.Users[i])
	}
	for i := range s.Buildings {
		out = append(out, &s.Buildings[i])
	}
	for i := range s.Floors {
		out = append(out, &s.Floors[i])
	}
	for i := range s.Rooms {
		out = append(out, &s.Rooms[i])
	}
	for i := range s.Residents {
		out = append(out, &s.Residents[i])
	}
	for i := range s.Bills {
		out = append(out, &s.Bills[i])
	}
	return out
}
