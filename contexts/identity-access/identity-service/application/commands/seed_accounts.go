package commands

import (
	"context"
	"errors"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/contexts/identity-access/identity-service/ports"
)

type SeedAccount struct {
	Username string
	Password string
	Role     entities.Role
}

type SeedAccountsResult struct {
	Created []string
	Skipped []string
}

// SeedAccountsUseCase creates the configured bootstrap accounts that do not exist yet.
// Running it again is a no-op.
type SeedAccountsUseCase struct {
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Accounts []SeedAccount
	Logger   *slog.Logger
}

func (u SeedAccountsUseCase) Execute(ctx context.Context) (SeedAccountsResult, error) {
	logger := application.ResolveLogger(u.Logger)
	var result SeedAccountsResult

	for _, account := range u.Accounts {
		username := normalizeUsername(account.Username)
		if err := entities.ValidateUsername(username); err != nil {
			return result, err
		}
		if err := entities.ValidatePassword(account.Password); err != nil {
			return result, err
		}
		if !account.Role.Valid() {
			return result, domainerrors.ErrInvalidRole
		}

		_, err := u.Users.GetUserByUsername(ctx, username)
		if err == nil {
			result.Skipped = append(result.Skipped, username)
			continue
		}
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return result, err
		}

		digest, err := u.Hasher.Hash(account.Password)
		if err != nil {
			return result, err
		}
		user, err := u.Users.CreateUser(ctx, entities.User{
			Username:       username,
			PasswordDigest: digest,
			Role:           account.Role,
		})
		if err != nil {
			if errors.Is(err, domainerrors.ErrUsernameTaken) {
				result.Skipped = append(result.Skipped, username)
				continue
			}
			logger.Error("seed account failed",
				"event", "identity_seed_account_failed",
				"module", "identity-access/identity-service",
				"layer", "application",
				"username", username,
				"error", err.Error(),
			)
			return result, err
		}
		result.Created = append(result.Created, username)
		logger.Info("seed account created",
			"event", "identity_seed_account_created",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", user.UserID,
			"role", string(user.Role),
		)
	}
	return result, nil
}
