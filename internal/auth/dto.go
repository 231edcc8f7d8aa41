package auth

import "github.com/classmart/classmart-backend/internal/users"

// LoginInput is the credential payload for POST /login/.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginDTO is returned to the browser client. The token travels back in the
// Authorization header as "Token <jwt>" on subsequent requests.
type LoginDTO struct {
	Token   string `json:"token"`
	UserID  int64  `json:"user_id"`
	Usuario string `json:"username"`
	IsStaff bool   `json:"is_staff"`
}

// RegisterInput is the public self-registration payload.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterDTO wraps the created account.
type RegisterDTO struct {
	User users.UserDTO `json:"user"`
}
