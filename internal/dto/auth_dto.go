package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Firstname string `json:"firstname" validate:"required,max=255"`
	Lastname  string `json:"lastname"  validate:"omitempty,max=255"`
}

// AuthResponse is returned by both login and register: the bearer token plus
// the user without password hash or timestamps.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
