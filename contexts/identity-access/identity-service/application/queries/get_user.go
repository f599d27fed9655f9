package queries

import (
	"context"
	"log/slog"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

type GetUserUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (u GetUserUseCase) Execute(ctx context.Context, userID int64) (entities.User, error) {
	if userID <= 0 {
		return entities.User{}, domainerrors.ErrInvalidUserID
	}
	return u.Users.GetUser(ctx, userID)
}
