package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

// RegisterUserCommand is the input for account creation.
// Actor is nil for public self-registration.
type RegisterUserCommand struct {
	Actor    *entities.Principal
	Username string
	Password string
	Role     string
}

// RegisterUserUseCase creates accounts for both public registration and
// the admin-only create variant. Public callers may only pick the admin role
// when AllowPublicAdmin is set.
type RegisterUserUseCase struct {
	Users            ports.UserRepository
	Hasher           ports.PasswordHasher
	AllowPublicAdmin bool
	Logger           *slog.Logger
}

func (u RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.Actor != nil {
		if err := requireAdmin(*cmd.Actor); err != nil {
			return entities.User{}, err
		}
	}

	username := normalizeUsername(cmd.Username)
	if err := entities.ValidateUsername(username); err != nil {
		return entities.User{}, err
	}
	if err := entities.ValidatePassword(cmd.Password); err != nil {
		return entities.User{}, err
	}
	role, err := entities.ParseRole(cmd.Role)
	if err != nil {
		return entities.User{}, err
	}
	if cmd.Actor == nil && role == entities.RoleAdmin && !u.AllowPublicAdmin {
		return entities.User{}, domainerrors.ErrForbidden
	}

	if err := ensureUsernameFree(ctx, u.Users, username, 0); err != nil {
		return entities.User{}, err
	}

	digest, err := u.Hasher.Hash(cmd.Password)
	if err != nil {
		return entities.User{}, err
	}

	user, err := u.Users.CreateUser(ctx, entities.User{
		Username:       username,
		PasswordDigest: digest,
		Role:           role,
	})
	if err != nil {
		logger.Error("register user failed",
			"event", "identity_register_user_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"username", username,
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	var actorID int64
	if cmd.Actor != nil {
		actorID = cmd.Actor.UserID
	}
	logger.Info("user registered",
		"event", "identity_user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
		"role", string(user.Role),
		"actor_id", actorID,
	)
	return user, nil
}
