package widget

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"house_management/internal/domain"
	"house_management/internal/tree"
)

// MeterState is the state of a MeterEditor
type MeterState int

const (
	MeterDisplay MeterState = iota // Shows the committed reading
	MeterEditing                   // Shows an editable draft
)

// Key names accepted by HandleKey
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// CommitUnits stores a reading and returns the bill as stored.
type CommitUnits func(units float64) (domain.BillData, error)

// MeterEditor edits one room's reading of one category for one month.
type MeterEditor struct {
	category  domain.Category // Water or electricity
	unitPrice float64         // Price per unit of the category
	bill      domain.BillData // Last committed bill
	state     MeterState
	draft     string // Raw input while editing
	commit    CommitUnits
}

// NewMeterEditor starts in Display state over the committed bill.
func NewMeterEditor(c domain.Category, unitPrice float64, bill domain.BillData, commit CommitUnits) *MeterEditor {
	e := &MeterEditor{category: c, unitPrice: unitPrice, commit: commit}
	e.Sync(bill)
	return e
}

func (e *MeterEditor) committedText() string {
	u := e.bill.Units(e.category)
	if u == nil {
		return ""
	}
	return strconv.FormatFloat(*u, 'f', -1, 64)
}

// State returns the current state.
func (e *MeterEditor) State() MeterState { return e.state }

// Draft returns the raw draft text.
func (e *MeterEditor) Draft() string { return e.draft }

// Committed returns the last committed units, nil when never read.
func (e *MeterEditor) Committed() *float64 {
	return e.bill.Clone().Units(e.category)
}

// Bill returns the last committed bill.
func (e *MeterEditor) Bill() domain.BillData { return e.bill.Clone() }

// Price is the live preview while editing and the committed amount otherwise.
func (e *MeterEditor) Price() float64 {
	if e.state != MeterEditing {
		return e.bill.Amount(e.category)
	}
	v, ok := parseUnits(e.draft)
	if !ok {
		return 0
	}
	return domain.Price(v, e.unitPrice)
}

// Edit enters Editing, seeding the draft from the committed value.
func (e *MeterEditor) Edit() {
	e.state = MeterEditing
	e.draft = e.committedText()
}

// SetDraft replaces the draft text. Ignored outside Editing.
func (e *MeterEditor) SetDraft(s string) {
	if e.state == MeterEditing {
		e.draft = s
	}
}

// Increment adds one unit to the draft.
func (e *MeterEditor) Increment() { e.adjust(1) }

// Decrement removes one unit from the draft, never going below zero.
func (e *MeterEditor) Decrement() { e.adjust(-1) }

func (e *MeterEditor) adjust(delta float64) {
	if e.state != MeterEditing {
		return
	}
	cur, ok := parseUnits(e.draft)
	if !ok {
		cur = 0
	}
	e.draft = strconv.FormatFloat(math.Max(0, cur+delta), 'f', -1, 64)
}

// CanSave reports whether the save control is enabled.
func (e *MeterEditor) CanSave() bool {
	return e.state == MeterEditing && strings.TrimSpace(e.draft) != ""
}

// Save commits the draft and returns to Display. A draft that is not a
// non-negative number leaves the editor untouched and returns ErrDraftRejected.
func (e *MeterEditor) Save() error {
	if !e.CanSave() {
		return ErrDraftRejected
	}
	v, ok := parseUnits(e.draft)
	if !ok {
		return ErrDraftRejected
	}
	bill, err := e.commit(v)
	if err != nil {
		return err // Still editing, draft kept
	}
	e.Sync(bill)
	return nil
}

// Cancel discards the draft and returns to Display.
func (e *MeterEditor) Cancel() {
	e.state = MeterDisplay
	e.draft = e.committedText()
}

// Sync applies an external change of the underlying bill. Any open edit is
// discarded.
func (e *MeterEditor) Sync(bill domain.BillData) {
	e.bill = bill.Clone()
	e.state = MeterDisplay
	e.draft = e.committedText()
}

// HandleKey maps Enter to Save and Escape to Cancel while editing.
func (e *MeterEditor) HandleKey(key string) error {
	if e.state != MeterEditing {
		return nil
	}
	switch key {
	case KeyEnter:
		return e.Save()
	case KeyEscape:
		e.Cancel()
	}
	return nil
}

func parseUnits(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BillStore is the slice of the console a MeterBoard needs.
type BillStore interface {
	Tariff() domain.Tariff
	Bill(roomID, period string) (domain.BillData, error)
	UpdateBill(roomID, period string, patch domain.BillPatch) (domain.BillData, error)
}

// MeterBoard keeps one editor per room for a category and the active month.
type MeterBoard struct {
	store    BillStore
	category domain.Category
	period   string
	editors  map[string]*MeterEditor // Keyed by room id
}

// NewMeterBoard creates a board showing period.
func NewMeterBoard(store BillStore, c domain.Category, period string) *MeterBoard {
	return &MeterBoard{store: store, category: c, period: period, editors: map[string]*MeterEditor{}}
}

// Period returns the active month.
func (b *MeterBoard) Period() string { return b.period }

// Editor returns the editor of a room, creating it on first use.
func (b *MeterBoard) Editor(roomID string) (*MeterEditor, error) {
	if e, ok := b.editors[roomID]; ok {
		return e, nil
	}
	bill, err := b.store.Bill(roomID, b.period)
	if err != nil {
		return nil, err
	}
	e := NewMeterEditor(b.category, b.store.Tariff().UnitPrice(b.category), bill, b.committer(roomID))
	b.editors[roomID] = e
	return e, nil
}

func (b *MeterBoard) committer(roomID string) CommitUnits {
	return func(units float64) (domain.BillData, error) {
		return b.store.UpdateBill(roomID, b.period, domain.UnitsPatch(b.category, units))
	}
}

// SetPeriod switches the active month. Every editor is resynced to the new
// month's bill and returns to Display.
func (b *MeterBoard) SetPeriod(period string) error {
	if !domain.ValidPeriod(period) {
		return fmt.Errorf("period %q: %w", period, tree.ErrValidation)
	}
	b.period = period
	for roomID, e := range b.editors {
		bill, err := b.store.Bill(roomID, period)
		if err != nil {
			delete(b.editors, roomID) // Room is gone
			continue
		}
		e.Sync(bill)
	}
	return nil
}
