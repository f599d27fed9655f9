package httpadapter

import (
	"context"
	"log/slog"

	application "classtrack/contexts/identity-access/identity-service/application"
	"classtrack/contexts/identity-access/identity-service/application/commands"
	"classtrack/contexts/identity-access/identity-service/application/queries"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	httptransport "classtrack/contexts/identity-access/identity-service/transport/http"
	"classtrack/internal/shared/paging"

	"github.com/samber/lo"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Login        commands.LoginUseCase
	RegisterUser commands.RegisterUserUseCase
	UpdateUser   commands.UpdateUserUseCase
	DeleteUser   commands.DeleteUserUseCase
	Authenticate queries.AuthenticateUseCase
	GetUser      queries.GetUserUseCase
	ListUsers    queries.ListUsersUseCase
	CountUsers   queries.CountUsersUseCase
	Logger       *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.TokenResponse, error) {
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		return httptransport.TokenResponse{}, err
	}
	return httptransport.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
	}, nil
}

// AuthenticateHandler resolves the caller behind a bearer token.
func (h Handler) AuthenticateHandler(ctx context.Context, token string) (entities.Principal, error) {
	return h.Authenticate.Execute(ctx, token)
}

// RegisterUserHandler is the public self-registration path.
func (h Handler) RegisterUserHandler(ctx context.Context, request httptransport.CreateUserRequest) (httptransport.UserResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http register user received",
		"event", "identity_http_register_user_received",
		"module", "identity-access/identity-service",
		"layer", "transport",
		"role", request.Role,
	)

	user, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) CreateUserHandler(
	ctx context.Context,
	actor entities.Principal,
	request httptransport.CreateUserRequest,
) (httptransport.UserResponse, error) {
	user, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Actor:    &actor,
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) UpdateUserHandler(
	ctx context.Context,
	actor entities.Principal,
	userID int64,
	request httptransport.UpdateUserRequest,
) (httptransport.UserResponse, error) {
	user, err := h.UpdateUser.Execute(ctx, commands.UpdateUserCommand{
		Actor:    actor,
		UserID:   userID,
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, actor entities.Principal, userID int64) (httptransport.MessageResponse, error) {
	if err := h.DeleteUser.Execute(ctx, commands.DeleteUserCommand{
		Actor:  actor,
		UserID: userID,
	}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "User deleted successfully"}, nil
}

func (h Handler) CurrentUserHandler(ctx context.Context, actor entities.Principal) (httptransport.UserResponse, error) {
	user, err := h.GetUser.Execute(ctx, actor.UserID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context, actor entities.Principal, page paging.Page) ([]httptransport.UserResponse, error) {
	users, err := h.ListUsers.Execute(ctx, queries.ListUsersQuery{
		Actor: actor,
		Page:  page,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(user entities.User, _ int) httptransport.UserResponse {
		return toUserResponse(user)
	}), nil
}

// ExportUsersHandler returns every account without pagination.
func (h Handler) ExportUsersHandler(ctx context.Context, actor entities.Principal) ([]httptransport.UserResponse, error) {
	return h.ListUsersHandler(ctx, actor, paging.All())
}

func (h Handler) CountUsersHandler(ctx context.Context, actor entities.Principal) (httptransport.CountResponse, error) {
	count, err := h.CountUsers.Execute(ctx, actor)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	return httptransport.CountResponse{Count: count}, nil
}

func toUserResponse(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		ID:       user.UserID,
		Username: user.Username,
		Role:     string(user.Role),
	}
}
