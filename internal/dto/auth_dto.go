package dto

import "github.com/noah-isme/coursesync/internal/models"

// LoginRequest is the payload for POST /users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=256"`
}

// RegisterRequest is the payload for POST /users/register.
type RegisterRequest struct {
	Username string      `json:"username" validate:"required,max=128"`
	Password string      `json:"password" validate:"required,min=6,max=256"`
	Role     models.Role `json:"role" validate:"required,oneof=student teacher"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Session converts the response into the session pair kept by the client.
func (r AuthResponse) Session() models.Session {
	return models.Session{User: r.User, Token: r.Token}
}
