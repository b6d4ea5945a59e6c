package domain

import "strings"

// Role is the access tag carried by every console account
type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access including user management
	RoleWater    Role = "WATER"    // Water meter reader
	RoleElectric Role = "ELECTRIC" // Electricity meter reader
)

// Page names a console screen gated by role
type Page string

const (
	PageBuildings Page = "buildings" // Building / floor / room overview
	PageWater     Page = "water"     // Water meter readings
	PageElectric  Page = "electric"  // Electricity meter readings
	PageResidents Page = "residents" // Resident management table
	PageUsers     Page = "users"     // User management table
)

// AllPages lists every page in menu order
var AllPages = []Page{PageBuildings, PageWater, PageElectric, PageResidents, PageUsers}

// ParseRole normalises a role string, reporting whether it is known
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleWater, RoleElectric:
		return r, true
	}
	return "", false
}

// Label returns the display label used by the user table
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "ผู้ดูแลระบบ (Admin)"
	case RoleWater:
		return "เจ้าหน้าที่จดมิเตอร์น้ำ"
	case RoleElectric:
		return "เจ้าหน้าที่จดมิเตอร์ไฟ"
	}
	return string(r)
}

// CanAccess reports whether the role may open the given page
func (r Role) CanAccess(p Page) bool {
	switch r {
	case RoleAdmin:
		return true // Admin reaches every page
	case RoleWater:
		return p == PageWater
	case RoleElectric:
		return p == PageElectric
	}
	return false
}

// Pages returns the pages reachable by the role
func (r Role) Pages() []Page {
	var pages []Page
	for _, p := range AllPages {
		if r.CanAccess(p) {
			pages = append(pages, p)
		}
	}
	return pages
}

// User Model
type User struct {
	ID       string `json:"id"`                 // Opaque id
	Username string `json:"username"`           // Login name, unique ignoring case
	Password string `json:"password,omitempty"` // Hashed password, absent in the session view
	Role     Role   `json:"role"`               // ADMIN, WATER or ELECTRIC
	Name     string `json:"name"`               // Display name
}

// Public returns a copy without the password
func (u User) Public() User {
	u.Password = ""
	return u
}
