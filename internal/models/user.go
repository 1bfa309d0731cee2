package models

import "strings"

// Role decides what a user can see and change.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleDeveloper      Role = "developer"
	RoleViewer         Role = "viewer"
)

var roleLabels = map[Role]string{
	RoleAdmin:          "Admin",
	RoleProjectManager: "Project Manager",
	RoleDeveloper:      "Developer",
	RoleViewer:         "Viewer",
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label is the human readable role name used in notifications.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// User is a dashboard account. Password is plaintext and only ever
// compared against the seeded mock credentials.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

func (u User) Key() string { return u.ID }

// Public strips the password before a user leaves the process.
func (u User) Public() User {
	u.Password = ""
	return u
}

// EmailMatches compares emails case-insensitively.
func (u User) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}

// ClonePtr returns a detached copy, or nil.
func ClonePtr(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
