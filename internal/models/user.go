package models

import "time"

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// roleHierarchy orders roles from most to least privileged.
var roleHierarchy = []string{RoleAdmin, RoleUser}

// User is a back-office account. Password holds the bcrypt hash, never the
// plain text. Timezone names an IANA location used when compiling the user's
// date filters.
type User struct {
	ID       int64
	Name     string `validate:"required,min=2,max=255"`
	Surname  string `validate:"required,min=2,max=50"`
	Username string `validate:"required,email,max=180"`
	Password string `validate:"required"`
	Roles    []string
	Timezone string

	SoftDeleted bool
	CreatedAt   time.Time
}

// Location resolves the user's timezone, falling back to UTC when unset or
// unknown.
func (u *User) Location() *time.Location {
	if u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FullName joins name and surname; a missing surname falls back to the name
// alone.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// AllRoles returns the stored roles with ROLE_USER always present.
func (u *User) AllRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := map[string]bool{}
	for _, role := range append(append([]string{}, u.Roles...), RoleUser) {
		if !seen[role] {
			roles = append(roles, role)
			seen[role] = true
		}
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole returns the most privileged role the user holds.
func (u *User) PrimaryRole() string {
	for _, role := range roleHierarchy {
		if u.HasRole(role) {
			return role
		}
	}
	return RoleUser
}

// HumanizeRole turns ROLE_ADMIN into Admin.
func HumanizeRole(role string) string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	default:
		return role
	}
}
