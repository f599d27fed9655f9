package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

// AuthenticateUseCase resolves a bearer token to the account it was issued for.
type AuthenticateUseCase struct {
	Users  ports.UserRepository
	Tokens ports.TokenIssuer
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u AuthenticateUseCase) Execute(ctx context.Context, token string) (entities.Principal, error) {
	logger := application.ResolveLogger(u.Logger)

	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Principal{}, domainerrors.ErrUnauthenticated
	}
	subject, ok := u.Tokens.Verify(token, u.now())
	if !ok {
		logger.Debug("token rejected",
			"event", "identity_token_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
		)
		return entities.Principal{}, domainerrors.ErrUnauthenticated
	}

	user, err := u.Users.GetUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return entities.Principal{}, domainerrors.ErrUnauthenticated
		}
		return entities.Principal{}, err
	}
	return entities.Principal{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (u AuthenticateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
