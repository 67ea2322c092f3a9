package model

import "time"

// User is a staff account that can sign in to the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message     string   `json:"message"`
	Token       string   `json:"token"`
	User        User     `json:"user"`
	Permissions []string `json:"permissions"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanumunderscore"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=ADMIN TEACHER CLERK"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}

// UpdateUserRequest is the payload for updating a user. Password is only
// changed when provided.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanumunderscore"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=ADMIN TEACHER CLERK"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}
