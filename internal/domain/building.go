package domain

import "fmt"

// RoomType fixes the capacity of a room at creation
type RoomType string

const (
	RoomSingle RoomType = "SINGLE" // One resident
	RoomDouble RoomType = "DOUBLE" // Two residents
)

// Valid reports whether the room type is known
func (t RoomType) Valid() bool {
	return t == RoomSingle || t == RoomDouble
}

// Capacity is the maximum resident count for the type
func (t RoomType) Capacity() int {
	if t == RoomDouble {
		return 2
	}
	return 1
}

// Label is the short English label shown next to room numbers
func (t RoomType) Label() string {
	if t == RoomDouble {
		return "Double"
	}
	return "Single"
}

// Resident Model
type Resident struct {
	ID   string `json:"id"`   // Opaque id
	Name string `json:"name"` // Full name
}

// Room Model
type Room struct {
	ID        string              `json:"id"`        // Opaque id
	Number    string              `json:"number"`    // Display number, e.g. "101"
	Type      RoomType            `json:"type"`      // SINGLE or DOUBLE
	Residents []Resident          `json:"residents"` // Ordered residents
	Bills     map[string]BillData `json:"bills"`     // Keyed by "YYYY-MM"
}

// Capacity is derived from the room type
func (r *Room) Capacity() int {
	return r.Type.Capacity()
}

// IsFull recomputes occupancy from the resident list
func (r *Room) IsFull() bool {
	return len(r.Residents) >= r.Capacity()
}

// Bill returns the bill for the period, zero valued when absent
func (r *Room) Bill(period string) BillData {
	if b, ok := r.Bills[period]; ok {
		return b
	}
	return BillData{}
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	c := *r
	c.Residents = append([]Resident(nil), r.Residents...)
	c.Bills = make(map[string]BillData, len(r.Bills))
	for k, v := range r.Bills {
		c.Bills[k] = v.Clone()
	}
	return &c
}

// Floor Model
type Floor struct {
	ID     string  `json:"id"`             // Opaque id
	Number int     `json:"number"`         // Floor number
	Name   string  `json:"name,omitempty"` // Optional custom name
	Rooms  []*Room `json:"rooms"`          // Ordered rooms
}

// Label returns the custom name or the default "ชั้น N"
func (f *Floor) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("ชั้น %d", f.Number)
}

// Clone returns a deep copy of the floor
func (f *Floor) Clone() *Floor {
	c := *f
	c.Rooms = make([]*Room, len(f.Rooms))
	for i, r := range f.Rooms {
		c.Rooms[i] = r.Clone()
	}
	return &c
}

// Building Model
type Building struct {
	ID     string   `json:"id"`     // Opaque id
	Name   string   `json:"name"`   // Building name
	Floors []*Floor `json:"floors"` // Ordered floors
}

// Clone returns a deep copy of the building
func (b *Building) Clone() *Building {
	c := *b
	c.Floors = make([]*Floor, len(b.Floors))
	for i, f := range b.Floors {
		c.Floors[i] = f.Clone()
	}
	return &c
}
