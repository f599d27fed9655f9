package queries

import (
	"context"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
	"classtrack/internal/shared/paging"
)

type ListUsersQuery struct {
	Actor entities.Principal
	Page  paging.Page
}

// ListUsersUseCase serves the admin listing and, with paging.All, the export.
type ListUsersUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (u ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) ([]entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	if !query.Actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if query.Page.Skip < 0 || query.Page.Limit < 0 {
		return nil, paging.ErrInvalidPage
	}

	users, err := u.Users.ListUsers(ctx, query.Page)
	if err != nil {
		logger.Error("list users failed",
			"event", "identity_list_users_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"actor_id", query.Actor.UserID,
			"error", err.Error(),
		)
		return nil, err
	}
	return users, nil
}

type CountUsersUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (u CountUsersUseCase) Execute(ctx context.Context, actor entities.Principal) (int64, error) {
	if !actor.IsAdmin() {
		return 0, domainerrors.ErrForbidden
	}
	return u.Users.CountUsers(ctx)
}
