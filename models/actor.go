package models

import "strings"

const (
	RoleAdmin  = "Admin"
	RoleViewer = "Viewer"
)

// Actor is the acting user resolved by the auth layer. It is passed explicitly
// into every call that makes an authorization or attribution decision; the
// repositories never read ambient session state.
type Actor struct {
	ID    string `json:"User_ID"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Role  string `json:"Role"`
}

func (a Actor) IsAdmin() bool {
	return strings.EqualFold(a.Role, RoleAdmin)
}
