package httptransport

import (
	"time"

	"classtrack/internal/shared/patch"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest decodes absent keys as unset.
type UpdateUserRequest struct {
	Username patch.Field[string] `json:"username"`
	Password patch.Field[string] `json:"password"`
	Role     patch.Field[string] `json:"role"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
