package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "classtrack/contexts/identity-access/identity-service/application"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

const DefaultTokenTTL = 30 * time.Minute

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// LoginUseCase exchanges a username and password for a bearer token.
// Unknown usernames and wrong passwords fail identically.
type LoginUseCase struct {
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenIssuer
	Clock    ports.Clock
	TokenTTL time.Duration
	Logger   *slog.Logger
}

func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(u.Logger)

	username := normalizeUsername(cmd.Username)
	user, err := u.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			logger.Warn("login rejected",
				"event", "identity_login_rejected",
				"module", "identity-access/identity-service",
				"layer", "application",
				"reason", "unknown_username",
			)
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !u.Hasher.Verify(cmd.Password, user.PasswordDigest) {
		logger.Warn("login rejected",
			"event", "identity_login_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", user.UserID,
			"reason", "password_mismatch",
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	ttl := u.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token, expiresAt, err := u.Tokens.Issue(user.Username, ttl, u.now())
	if err != nil {
		logger.Error("issue token failed",
			"event", "identity_issue_token_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", user.UserID,
			"error", err.Error(),
		)
		return LoginResult{}, err
	}

	logger.Info("login succeeded",
		"event", "identity_login_succeeded",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (u LoginUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
