package dto

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token issued after a successful login or
// registration.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
