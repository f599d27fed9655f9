package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

type DeleteUserCommand struct {
	Actor  entities.Principal
	UserID int64
}

// DeleteUserUseCase removes an account. References is optional; when set it
// must report the user unused before the row is deleted.
type DeleteUserUseCase struct {
	Users      ports.UserRepository
	References ports.UserReferences
	Logger     *slog.Logger
}

func (u DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return err
	}
	if cmd.UserID <= 0 {
		return domainerrors.ErrInvalidUserID
	}
	if _, err := u.Users.GetUser(ctx, cmd.UserID); err != nil {
		return err
	}
	if u.References != nil {
		inUse, err := u.References.UserInUse(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if inUse {
			return domainerrors.ErrUserInUse
		}
	}
	if err := u.Users.DeleteUser(ctx, cmd.UserID); err != nil {
		logger.Error("delete user failed",
			"event", "identity_delete_user_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", cmd.UserID,
			"actor_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return err
	}
	if u.References != nil {
		if err := u.References.ReleaseUser(ctx, cmd.UserID); err != nil {
			logger.Error("release user references failed",
				"event", "identity_release_user_failed",
				"module", "identity-access/identity-service",
				"layer", "application",
				"user_id", cmd.UserID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("user deleted",
		"event", "identity_user_deleted",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", cmd.UserID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
