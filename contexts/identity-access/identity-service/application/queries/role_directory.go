package queries

import (
	"context"
	"errors"

	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

// RoleDirectory answers role lookups for other contexts using only builtin
// types, so they can declare a matching port without importing this module.
type RoleDirectory struct {
	Users ports.UserRepository
}

// LookupRole returns the role of userID and whether the account exists.
func (d RoleDirectory) LookupRole(ctx context.Context, userID int64) (string, bool, error) {
	if userID <= 0 {
		return "", false, nil
	}
	user, err := d.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(user.Role), true, nil
}
