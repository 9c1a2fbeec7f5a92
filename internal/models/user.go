package models

import "strings"

// Role enumerates the account types known to the course service.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole normalises user input into a Role.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTeacher:
		return RoleTeacher, true
	default:
		return "", false
	}
}

// User is the authenticated identity returned by login and register.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session pairs a user with the bearer token the server issued for them.
type Session struct {
	User  User
	Token string
}
