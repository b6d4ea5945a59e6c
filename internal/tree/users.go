package tree

import (
	"fmt"
	"slices"
	"strings"

	"house_management/internal/domain"
)

// User returns the account with the given id.
func (w *World) User(id string) (domain.User, error) {
	for _, u := range w.Users {
		if u.ID == id {
			return *u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
}

// UserByUsername looks an account up by login name, ignoring case.
func (w *World) UserByUsername(username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	for _, u := range w.Users {
		if strings.EqualFold(u.Username, username) {
			return *u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (w *World) checkUser(u *domain.User, requirePassword bool) error {
	var err error
	if u.Name, err = required("name", u.Name); err != nil {
		return err
	}
	if u.Username, err = required("username", u.Username); err != nil {
		return err
	}
	if requirePassword && u.Password == "" {
		return fmt.Errorf("password is required: %w", ErrValidation)
	}
	role, ok := domain.ParseRole(string(u.Role))
	if !ok {
		return fmt.Errorf("role %q: %w", u.Role, ErrValidation)
	}
	u.Role = role
	for _, other := range w.Users {
		if other.ID != u.ID && strings.EqualFold(other.Username, u.Username) {
			return fmt.Errorf("username %q already exists: %w", u.Username, ErrValidation)
		}
	}
	return nil
}

// AddUser creates an account; the id is assigned here.
func (w *World) AddUser(u domain.User) (domain.User, []Change, error) {
	u.ID = w.nextID()
	if err := w.checkUser(&u, true); err != nil {
		return domain.User{}, nil, err
	}
	stored := u
	w.Users = append(w.Users, &stored)
	return u, []Change{upsert(userRecord(&stored))}, nil
}

// EditUser replaces an account's fields. A blank password keeps the old one.
func (w *World) EditUser(u domain.User) (domain.User, []Change, error) {
	idx := slices.IndexFunc(w.Users, func(x *domain.User) bool { return x.ID == u.ID })
	if idx < 0 {
		return domain.User{}, nil, fmt.Errorf("user %q: %w", u.ID, ErrNotFound)
	}
	if u.Password == "" {
		u.Password = w.Users[idx].Password
	}
	if err := w.checkUser(&u, true); err != nil {
		return domain.User{}, nil, err
	}
	stored := u
	w.Users[idx] = &stored
	return u, []Change{upsert(userRecord(&stored))}, nil
}

// RemoveUser deletes an account.
func (w *World) RemoveUser(id string) ([]Change, error) {
	idx := slices.IndexFunc(w.Users, func(x *domain.User) bool { return x.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	w.Users = slices.Delete(w.Users, idx, idx+1)
	return []Change{remove(&domain.UserRow{ID: id})}, nil
}

// PublicUsers returns every account without passwords.
func (w *World) PublicUsers() []domain.User {
	out := make([]domain.User, len(w.Users))
	for i, u := range w.Users {
		out[i] = u.Public()
	}
	return out
}
