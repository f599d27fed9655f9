package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
	"classtrack/internal/shared/patch"
)

// UpdateUserCommand carries a partial update; only set fields are applied.
type UpdateUserCommand struct {
	Actor    entities.Principal
	UserID   int64
	Username patch.Field[string]
	Password patch.Field[string]
	Role     patch.Field[string]
}

type UpdateUserUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

func (u UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return entities.User{}, err
	}
	if cmd.UserID <= 0 {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}

	username, usernameSet := cmd.Username.Get()
	username = normalizeUsername(username)
	if usernameSet {
		if err := entities.ValidateUsername(username); err != nil {
			return entities.User{}, err
		}
	}
	password, passwordSet := cmd.Password.Get()
	if passwordSet {
		if err := entities.ValidatePassword(password); err != nil {
			return entities.User{}, err
		}
	}
	var role entities.Role
	rawRole, roleSet := cmd.Role.Get()
	if roleSet {
		parsed, err := entities.ParseRole(rawRole)
		if err != nil {
			return entities.User{}, err
		}
		role = parsed
	}

	user, err := u.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return entities.User{}, err
	}

	if usernameSet && username != user.Username {
		if err := ensureUsernameFree(ctx, u.Users, username, user.UserID); err != nil {
			return entities.User{}, err
		}
		user.Username = username
	}
	if passwordSet {
		digest, err := u.Hasher.Hash(password)
		if err != nil {
			return entities.User{}, err
		}
		user.PasswordDigest = digest
	}
	if roleSet {
		user.Role = role
	}

	updated, err := u.Users.UpdateUser(ctx, user)
	if err != nil {
		logger.Error("update user failed",
			"event", "identity_update_user_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", cmd.UserID,
			"actor_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	logger.Info("user updated",
		"event", "identity_user_updated",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", updated.UserID,
		"actor_id", cmd.Actor.UserID,
		"username_changed", usernameSet,
		"password_changed", passwordSet,
		"role_changed", roleSet,
	)
	return updated, nil
}
