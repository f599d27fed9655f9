package identity

import (
	"log/slog"
	"time"

	"classtrack/contexts/identity-access/identity-service/adapters/credentials"
	httpadapter "classtrack/contexts/identity-access/identity-service/adapters/http"
	"classtrack/contexts/identity-access/identity-service/adapters/memory"
	"classtrack/contexts/identity-access/identity-service/application/commands"
	"classtrack/contexts/identity-access/identity-service/application/queries"
	"classtrack/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Handler   httpadapter.Handler
	Directory queries.RoleDirectory
	Seeder    commands.SeedAccountsUseCase
	Store     *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users        ports.UserRepository
	Hasher       ports.PasswordHasher
	Tokens       ports.TokenIssuer
	Clock        ports.Clock
	TokenTTL     time.Duration
	SeedAccounts []commands.SeedAccount
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Login: commands.LoginUseCase{
			Users:    deps.Users,
			Hasher:   deps.Hasher,
			Tokens:   deps.Tokens,
			Clock:    deps.Clock,
			TokenTTL: deps.TokenTTL,
			Logger:   deps.Logger,
		},
		RegisterUser: commands.RegisterUserUseCase{
			Users:  deps.Users,
			Hasher: deps.Hasher,
			Logger: deps.Logger,
		},
		UpdateUser: commands.UpdateUserUseCase{
			Users:  deps.Users,
			Hasher: deps.Hasher,
			Logger: deps.Logger,
		},
		DeleteUser: commands.DeleteUserUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		Authenticate: queries.AuthenticateUseCase{
			Users:  deps.Users,
			Tokens: deps.Tokens,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		GetUser: queries.GetUserUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		ListUsers: queries.ListUsersUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		CountUsers: queries.CountUsersUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler:   handler,
		Directory: queries.RoleDirectory{Users: deps.Users},
		Seeder: commands.SeedAccountsUseCase{
			Users:    deps.Users,
			Hasher:   deps.Hasher,
			Accounts: deps.SeedAccounts,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters,
// SHA-256 digests and tokens signed with secret.
func NewInMemoryModule(secret string, seed []commands.SeedAccount, logger *slog.Logger) (Module, error) {
	tokens, err := credentials.NewJWTIssuer(secret)
	if err != nil {
		return Module{}, err
	}
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:        store,
		Hasher:       credentials.SHA256Hasher{},
		Tokens:       tokens,
		Clock:        store,
		TokenTTL:     commands.DefaultTokenTTL,
		SeedAccounts: seed,
		Logger:       logger,
	})
	module.Store = store
	return module, nil
}

// WithUserReferences makes account deletion consult refs, which is usually the
// classroom module's usage tracker.
func (m Module) WithUserReferences(refs ports.UserReferences) Module {
	m.Handler.DeleteUser.References = refs
	return m
}

// WithPublicAdminSignup lets unauthenticated registration create admin accounts.
func (m Module) WithPublicAdminSignup(allowed bool) Module {
	m.Handler.RegisterUser.AllowPublicAdmin = allowed
	return m
}
