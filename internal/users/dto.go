package users

import "time"

// UserDTO is the wire representation of a user. The password hash never leaves
// the service layer.
type UserDTO struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	IsStaff       bool       `json:"is_staff"`
	IsSuperuser   bool       `json:"is_superuser"`
	EmailVerified bool       `json:"email_verified"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateUserInput is the admin-side creation payload.
type CreateUserInput struct {
	Username    string `json:"username" validate:"required,min=3,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UpdateUserInput updates profile fields. The id travels in the body because
// the legacy update endpoint has no path parameter.
type UpdateUserInput struct {
	ID          int64   `json:"id" validate:"required,min=1"`
	Username    string  `json:"username" validate:"required,min=3,max=150"`
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsActive    *bool   `json:"is_active"`
}
