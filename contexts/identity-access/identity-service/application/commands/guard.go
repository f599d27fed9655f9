package commands

import (
	"context"
	"errors"
	"strings"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

func requireAdmin(actor entities.Principal) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ensureUsernameFree reports ErrUsernameTaken when another account owns username.
// ownerID is the account allowed to keep it (0 for none).
func ensureUsernameFree(ctx context.Context, users ports.UserRepository, username string, ownerID int64) error {
	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if existing.UserID != ownerID {
		return domainerrors.ErrUsernameTaken
	}
	return nil
}
