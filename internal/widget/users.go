package widget

import (
	"fmt"
	"strings"

	"house_management/internal/domain"
)

// UserDirectory is the slice of the console a UserTable needs.
type UserDirectory interface {
	Users() []domain.User
	User(id string) (domain.User, error)
	AddUser(u domain.User) (domain.User, error)
	EditUser(u domain.User) (domain.User, error)
	RemoveUser(id string) error
}

// UserRow is one line of the user table.
type UserRow struct {
	domain.User
	RoleLabel string `json:"role_label"`
	CanDelete bool   `json:"can_delete"` // False for the signed-in account, whose delete control is hidden
}

// UserForm is the add/edit modal state. Password stays blank in edit mode
// unless it is being changed.
type UserForm struct {
	Mode     Mode        `json:"mode"`
	ID       string      `json:"id,omitempty"`
	Username string      `json:"username"`
	Password string      `json:"-"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// UserTable is the account list seen by an administrator.
type UserTable struct {
	dir       UserDirectory
	confirm   Confirm
	currentID string // Signed-in account
	search    string
	form      UserForm
}

// NewUserTable creates a table for the signed-in account currentID.
func NewUserTable(dir UserDirectory, currentID string, confirm Confirm) *UserTable {
	return &UserTable{dir: dir, currentID: currentID, confirm: confirm}
}

// SetSearch sets the filter term over name and username.
func (t *UserTable) SetSearch(term string) { t.search = term }

// Rows returns the matching accounts.
func (t *UserTable) Rows() []UserRow {
	term := strings.ToLower(strings.TrimSpace(t.search))
	var rows []UserRow
	for _, u := range t.dir.Users() {
		if term != "" && !strings.Contains(strings.ToLower(u.Name), term) && !strings.Contains(strings.ToLower(u.Username), term) {
			continue
		}
		rows = append(rows, UserRow{User: u.Public(), RoleLabel: u.Role.Label(), CanDelete: u.ID != t.currentID})
	}
	return rows
}

// Form returns the modal state.
func (t *UserTable) Form() UserForm { return t.form }

// OpenAdd opens an empty modal. New accounts default to the water role.
func (t *UserTable) OpenAdd() {
	t.form = UserForm{Mode: ModeAdd, Role: domain.RoleWater}
}

// OpenEdit opens the modal on an existing account.
func (t *UserTable) OpenEdit(id string) error {
	u, err := t.dir.User(id)
	if err != nil {
		return err
	}
	t.form = UserForm{Mode: ModeEdit, ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
	return nil
}

// Close discards the modal.
func (t *UserTable) Close() { t.form = UserForm{} }

// SetFields replaces the editable fields.
func (t *UserTable) SetFields(username, password, name string, role domain.Role) {
	t.form.Username = username
	t.form.Password = password
	t.form.Name = name
	t.form.Role = role
}

// CanSubmit reports whether the submit control is enabled. A password is
// required only when adding.
func (t *UserTable) CanSubmit() bool {
	f := t.form
	if f.Mode == ModeClosed {
		return false
	}
	if strings.TrimSpace(f.Username) == "" || strings.TrimSpace(f.Name) == "" {
		return false
	}
	if _, ok := domain.ParseRole(string(f.Role)); !ok {
		return false
	}
	return f.Mode == ModeEdit || strings.TrimSpace(f.Password) != ""
}

// Submit applies the modal and closes it on success.
func (t *UserTable) Submit() (domain.User, error) {
	if !t.CanSubmit() {
		return domain.User{}, ErrIncomplete
	}
	u := domain.User{
		ID:       t.form.ID,
		Username: t.form.Username,
		Password: t.form.Password,
		Role:     t.form.Role,
		Name:     t.form.Name,
	}
	var (
		out domain.User
		err error
	)
	if t.form.Mode == ModeAdd {
		out, err = t.dir.AddUser(u)
	} else {
		out, err = t.dir.EditUser(u)
	}
	if err != nil {
		return domain.User{}, err
	}
	t.Close()
	return out, nil
}

// Delete removes an account after confirmation. The signed-in account cannot
// be removed here.
func (t *UserTable) Delete(id string) error {
	if id == t.currentID {
		return ErrSelfDelete
	}
	u, err := t.dir.User(id)
	if err != nil {
		return err
	}
	if !confirmOrDecline(t.confirm, fmt.Sprintf("ยืนยันการลบผู้ใช้งาน \"%s\" ออกจากระบบ?", u.Name)) {
		return ErrNotConfirmed
	}
	return t.dir.RemoveUser(id)
}
