package widget

import "fmt"

// Target is the part of a resident row that received a click
type Target int

const (
	TargetRow    Target = iota // Anywhere on the row, starts a move
	TargetRemove               // The remove control, deletes after confirmation
)

// ResidentItem is one resident row inside a room card.
type ResidentItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoomID string `json:"room_id"`
}

// ResidentMutator is the slice of the console a MoveCoordinator needs.
type ResidentMutator interface {
	MoveResident(residentID, fromRoomID, toRoomID string) error
	RemoveResident(id string) error
}

// PendingMove is a move started on a resident row and not yet dropped.
type PendingMove struct {
	ResidentID string `json:"resident_id"`
	FromRoomID string `json:"from_room_id"`
}

// MoveCoordinator owns the single pending move across every room card.
type MoveCoordinator struct {
	store   ResidentMutator
	confirm Confirm
	pending *PendingMove
}

// NewMoveCoordinator creates a coordinator. A nil confirm declines every removal.
func NewMoveCoordinator(store ResidentMutator, confirm Confirm) *MoveCoordinator {
	return &MoveCoordinator{store: store, confirm: confirm}
}

// Click dispatches one click on a resident row. A click on the remove control
// never also starts a move.
func (m *MoveCoordinator) Click(item ResidentItem, target Target) error {
	if target == TargetRemove {
		return m.Remove(item)
	}
	m.BeginMove(item.ID, item.RoomID)
	return nil
}

// BeginMove records a pending move, replacing any earlier one.
func (m *MoveCoordinator) BeginMove(residentID, fromRoomID string) {
	m.pending = &PendingMove{ResidentID: residentID, FromRoomID: fromRoomID}
}

// Pending returns the pending move, if any.
func (m *MoveCoordinator) Pending() (PendingMove, bool) {
	if m.pending == nil {
		return PendingMove{}, false
	}
	return *m.pending, true
}

// CancelMove drops the pending move.
func (m *MoveCoordinator) CancelMove() { m.pending = nil }

// Drop completes the pending move into toRoomID. Dropping onto the source room
// does nothing. The pending move is cleared whatever the outcome.
func (m *MoveCoordinator) Drop(toRoomID string) error {
	if m.pending == nil {
		return ErrNoPendingMove
	}
	p := *m.pending
	m.pending = nil
	if p.FromRoomID == toRoomID {
		return nil
	}
	return m.store.MoveResident(p.ResidentID, p.FromRoomID, toRoomID)
}

// Remove deletes the resident after confirmation.
func (m *MoveCoordinator) Remove(item ResidentItem) error {
	if !confirmOrDecline(m.confirm, fmt.Sprintf("ยืนยันการลบ %s ออกจากห้องพัก?", item.Name)) {
		return ErrNotConfirmed
	}
	if m.pending != nil && m.pending.ResidentID == item.ID {
		m.pending = nil
	}
	return m.store.RemoveResident(item.ID)
}
