package models

// Roles accepted by the session guard.
const (
	RoleDriver    = "driver"
	RolePassenger = "passenger"
)

// User mirrors the auth response payload; PasswordHash never leaves the store.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
