package ports

import (
	"context"
	"time"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	"classtrack/internal/shared/paging"
)

type Clock interface {
	Now() time.Time
}

// UserRepository persists accounts. CreateUser and UpdateUser return
// ErrUsernameTaken when the username collides with another row.
type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) (entities.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (entities.User, error)
	ListUsers(ctx context.Context, page paging.Page) ([]entities.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// PasswordHasher is a one-way digest of account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, digest string) bool
}

// TokenIssuer signs and verifies bearer tokens whose subject is a username.
// Verify reports ok=false for any invalid token without saying why.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration, now time.Time) (string, time.Time, error)
	Verify(token string, now time.Time) (string, bool)
}

// UserReferences is implemented by contexts that keep rows pointing at users.
// UserInUse blocks deletion; ReleaseUser detaches weak references after it.
type UserReferences interface {
	UserInUse(ctx context.Context, userID int64) (bool, error)
	ReleaseUser(ctx context.Context, userID int64) error
}
