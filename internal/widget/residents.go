package widget

import (
	"fmt"
	"strings"

	"house_management/internal/domain"
	"house_management/internal/tree"
)

// ResidentDirectory is the slice of the console a ResidentTable needs.
type ResidentDirectory interface {
	ResidentRows() []tree.ResidentRow
	FindResident(id string) (domain.Resident, string, error)
	Options(p tree.Placement) tree.PlacementOptions
	CheckPlacement(p tree.Placement) error
	AddResident(roomID, name string) (domain.Resident, error)
	RenameResident(id, name string) error
	RemoveResident(id string) error
}

// ResidentForm is the add/edit modal state.
type ResidentForm struct {
	Mode      Mode           `json:"mode"`
	EditingID string         `json:"editing_id,omitempty"` // Set in ModeEdit
	Name      string         `json:"name"`
	Placement tree.Placement `json:"placement"` // Used in ModeAdd only
}

// ResidentTable is the searchable resident list with its modal.
type ResidentTable struct {
	dir     ResidentDirectory
	confirm Confirm
	search  string
	form    ResidentForm
}

// NewResidentTable creates a table. A nil confirm declines every deletion.
func NewResidentTable(dir ResidentDirectory, confirm Confirm) *ResidentTable {
	return &ResidentTable{dir: dir, confirm: confirm}
}

// SetSearch sets the filter term.
func (t *ResidentTable) SetSearch(term string) { t.search = term }

// Rows returns the residents matching the filter term.
func (t *ResidentTable) Rows() []tree.ResidentRow {
	return tree.FilterResidents(t.dir.ResidentRows(), t.search)
}

// Form returns the modal state.
func (t *ResidentTable) Form() ResidentForm { return t.form }

// OpenAdd opens an empty modal with the location cascade.
func (t *ResidentTable) OpenAdd() {
	t.form = ResidentForm{Mode: ModeAdd}
}

// OpenEdit opens the modal on an existing resident. Only the name is editable.
func (t *ResidentTable) OpenEdit(id string) error {
	res, _, err := t.dir.FindResident(id)
	if err != nil {
		return err
	}
	t.form = ResidentForm{Mode: ModeEdit, EditingID: res.ID, Name: res.Name}
	return nil
}

// Close discards the modal.
func (t *ResidentTable) Close() { t.form = ResidentForm{} }

// SetName sets the name field.
func (t *ResidentTable) SetName(name string) { t.form.Name = name }

// SelectBuilding picks a building and resets floor and room.
func (t *ResidentTable) SelectBuilding(id string) {
	if t.form.Mode == ModeAdd {
		t.form.Placement = t.form.Placement.WithBuilding(id)
	}
}

// SelectFloor picks a floor and resets the room.
func (t *ResidentTable) SelectFloor(id string) {
	if t.form.Mode == ModeAdd {
		t.form.Placement = t.form.Placement.WithFloor(id)
	}
}

// SelectRoom picks a room.
func (t *ResidentTable) SelectRoom(id string) {
	if t.form.Mode == ModeAdd {
		t.form.Placement = t.form.Placement.WithRoom(id)
	}
}

// Options returns the cascade choices for the current selection.
func (t *ResidentTable) Options() tree.PlacementOptions {
	return t.dir.Options(t.form.Placement)
}

// CanSubmit reports whether the submit control is enabled.
func (t *ResidentTable) CanSubmit() bool {
	if strings.TrimSpace(t.form.Name) == "" {
		return false
	}
	switch t.form.Mode {
	case ModeAdd:
		p := t.form.Placement
		return p.BuildingID != "" && p.FloorID != "" && p.RoomID != ""
	case ModeEdit:
		return t.form.EditingID != ""
	}
	return false
}

// Submit applies the modal and closes it on success.
func (t *ResidentTable) Submit() (domain.Resident, error) {
	if !t.CanSubmit() {
		return domain.Resident{}, ErrIncomplete
	}
	var (
		res domain.Resident
		err error
	)
	switch t.form.Mode {
	case ModeAdd:
		if err = t.dir.CheckPlacement(t.form.Placement); err == nil {
			res, err = t.dir.AddResident(t.form.Placement.RoomID, t.form.Name)
		}
	case ModeEdit:
		if err = t.dir.RenameResident(t.form.EditingID, t.form.Name); err == nil {
			res, _, err = t.dir.FindResident(t.form.EditingID)
		}
	}
	if err != nil {
		return domain.Resident{}, err
	}
	t.Close()
	return res, nil
}

// Delete removes a resident after confirmation.
func (t *ResidentTable) Delete(id string) error {
	res, _, err := t.dir.FindResident(id)
	if err != nil {
		return err
	}
	if !confirmOrDecline(t.confirm, fmt.Sprintf("ยืนยันการลบรายชื่อผู้พักอาศัย \"%s\" ออกจากระบบ?", res.Name)) {
		return ErrNotConfirmed
	}
	return t.dir.RemoveResident(id)
}
