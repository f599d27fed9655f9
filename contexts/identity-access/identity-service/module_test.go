package identity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"classtrack/contexts/identity-access/identity-service/application/commands"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	httptransport "classtrack/contexts/identity-access/identity-service/transport/http"
	"classtrack/internal/shared/paging"
	"classtrack/internal/shared/patch"
)

var testSeed = []commands.SeedAccount{
	{Username: "admin@classtrack.edu", Password: "password123", Role: entities.RoleAdmin},
	{Username: "student@classtrack.edu", Password: "password123", Role: entities.RoleStudent},
}

func newTestModule(t *testing.T) Module {
	t.Helper()
	module, err := NewInMemoryModule("test-secret", testSeed, nil)
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if _, err := module.Seeder.Execute(context.Background()); err != nil {
		t.Fatalf("seed accounts: %v", err)
	}
	return module
}

func adminPrincipal(t *testing.T, module Module) entities.Principal {
	t.Helper()
	user, err := module.Store.GetUserByUsername(context.Background(), "admin@classtrack.edu")
	if err != nil {
		t.Fatalf("load seeded admin: %v", err)
	}
	return entities.Principal{UserID: user.UserID, Username: user.Username, Role: user.Role}
}

func TestSeedAccountsIsIdempotent(t *testing.T) {
	module := newTestModule(t)

	result, err := module.Seeder.Execute(context.Background())
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if len(result.Created) != 0 || len(result.Skipped) != 2 {
		t.Fatalf("expected 0 created and 2 skipped, got %+v", result)
	}
	count, _ := module.Store.CountUsers(context.Background())
	if count != 2 {
		t.Fatalf("expected 2 users, got %d", count)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	token, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Username: "student@classtrack.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token.TokenType != "bearer" || token.AccessToken == "" {
		t.Fatalf("unexpected token response: %+v", token)
	}

	principal, err := module.Handler.AuthenticateHandler(ctx, token.AccessToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.Role != entities.RoleStudent || principal.Username != "student@classtrack.edu" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestLoginRejectsWrongPasswordAndUnknownUser(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	_, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Username: "student@classtrack.edu",
		Password: "wrong-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	_, err = module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Username: "ghost",
		Password: "password123",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestAuthenticateRejectsTokenOfDeletedUser(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)

	created, err := module.Handler.RegisterUserHandler(ctx, httptransport.CreateUserRequest{
		Username: "temp-user",
		Password: "secret1",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Username: "temp-user", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := module.Handler.DeleteUserHandler(ctx, admin, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := module.Handler.AuthenticateHandler(ctx, token.AccessToken); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		request httptransport.CreateUserRequest
		want    error
	}{
		{"short username", httptransport.CreateUserRequest{Username: "ab", Password: "secret1", Role: "student"}, domainerrors.ErrInvalidUsername},
		{"short password", httptransport.CreateUserRequest{Username: "abc", Password: "12345", Role: "student"}, domainerrors.ErrInvalidPassword},
		{"unknown role", httptransport.CreateUserRequest{Username: "abc", Password: "123456", Role: "janitor"}, domainerrors.ErrInvalidRole},
		{"public admin", httptransport.CreateUserRequest{Username: "abc", Password: "123456", Role: "admin"}, domainerrors.ErrForbidden},
		{"taken", httptransport.CreateUserRequest{Username: "student@classtrack.edu", Password: "123456", Role: "student"}, domainerrors.ErrUsernameTaken},
		{"short after trim", httptransport.CreateUserRequest{Username: "  ab ", Password: "123456", Role: "student"}, domainerrors.ErrInvalidUsername},
		{"taken after trim", httptransport.CreateUserRequest{Username: " student@classtrack.edu ", Password: "123456", Role: "student"}, domainerrors.ErrUsernameTaken},
	}
	for _, tc := range cases {
		if _, err := module.Handler.RegisterUserHandler(ctx, tc.request); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAdminCreateUserRequiresAdmin(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)

	request := httptransport.CreateUserRequest{Username: "new-admin", Password: "secret1", Role: "admin"}
	student := entities.Principal{UserID: 2, Username: "student@classtrack.edu", Role: entities.RoleStudent}
	if _, err := module.Handler.CreateUserHandler(ctx, student, request); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	created, err := module.Handler.CreateUserHandler(ctx, admin, request)
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if created.Role != "admin" || created.ID == 0 {
		t.Fatalf("unexpected created user: %+v", created)
	}
}

func TestUpdateUserAppliesOnlySetFields(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)

	target, err := module.Handler.RegisterUserHandler(ctx, httptransport.CreateUserRequest{
		Username: "teacher-one",
		Password: "secret1",
		Role:     "teacher",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var request httptransport.UpdateUserRequest
	if err := json.Unmarshal([]byte(`{"role":"student"}`), &request); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	updated, err := module.Handler.UpdateUserHandler(ctx, admin, target.ID, request)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Username != "teacher-one" || updated.Role != "student" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Username: "teacher-one", Password: "secret1"}); err != nil {
		t.Fatalf("expected password to be unchanged, got %v", err)
	}

	_, err = module.Handler.UpdateUserHandler(ctx, admin, target.ID, httptransport.UpdateUserRequest{
		Password: patch.Set("newsecret"),
	})
	if err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if _, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Username: "teacher-one", Password: "newsecret"}); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestUpdateUserFailureOrder(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)
	student := entities.Principal{UserID: 2, Role: entities.RoleStudent}

	rename := httptransport.UpdateUserRequest{Username: patch.Set("student@classtrack.edu")}

	if _, err := module.Handler.UpdateUserHandler(ctx, student, 999, rename); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden before existence check, got %v", err)
	}
	if _, err := module.Handler.UpdateUserHandler(ctx, admin, 999, rename); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := module.Handler.UpdateUserHandler(ctx, admin, admin.UserID, rename); !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
	if _, err := module.Handler.UpdateUserHandler(ctx, admin, admin.UserID, httptransport.UpdateUserRequest{
		Username: patch.Set("admin@classtrack.edu"),
	}); err != nil {
		t.Fatalf("expected keeping own username to succeed, got %v", err)
	}
	if _, err := module.Handler.UpdateUserHandler(ctx, admin, admin.UserID, httptransport.UpdateUserRequest{
		Password: patch.Set("123"),
	}); !errors.Is(err, domainerrors.ErrInvalidPassword) {
		t.Fatalf("expected invalid password, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)
	teacher := entities.Principal{UserID: 7, Role: entities.RoleTeacher}

	if _, err := module.Handler.DeleteUserHandler(ctx, teacher, 2); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := module.Handler.DeleteUserHandler(ctx, admin, 404); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := module.Handler.DeleteUserHandler(ctx, admin, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	count, err := module.Handler.CountUsersHandler(ctx, admin)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count.Count != 1 {
		t.Fatalf("expected 1 user after delete, got %d", count.Count)
	}
}

func TestListAndExportUsersAdminOnly(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()
	admin := adminPrincipal(t, module)
	student := entities.Principal{UserID: 2, Role: entities.RoleStudent}

	if _, err := module.Handler.ListUsersHandler(ctx, student, paging.Default()); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := module.Handler.ListUsersHandler(ctx, admin, paging.Page{Skip: -1, Limit: 10}); !errors.Is(err, paging.ErrInvalidPage) {
		t.Fatalf("expected invalid page, got %v", err)
	}

	page, err := module.Handler.ListUsersHandler(ctx, admin, paging.Page{Skip: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 1 || page[0].Username != "student@classtrack.edu" {
		t.Fatalf("unexpected page: %+v", page)
	}

	exported, err := module.Handler.ExportUsersHandler(ctx, admin)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(exported) != 2 {
		t.Fatalf("expected 2 exported users, got %d", len(exported))
	}
}

func TestRoleDirectoryLookup(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	role, found, err := module.Directory.LookupRole(ctx, 1)
	if err != nil || !found || role != "admin" {
		t.Fatalf("expected admin, got %q found=%v err=%v", role, found, err)
	}
	if _, found, err := module.Directory.LookupRole(ctx, 99); err != nil || found {
		t.Fatalf("expected missing user, got found=%v err=%v", found, err)
	}
}

type stubReferences struct {
	inUse    map[int64]bool
	released []int64
}

func (s *stubReferences) UserInUse(_ context.Context, userID int64) (bool, error) {
	return s.inUse[userID], nil
}

func (s *stubReferences) ReleaseUser(_ context.Context, userID int64) error {
	s.released = append(s.released, userID)
	return nil
}

func TestDeleteUserConsultsReferences(t *testing.T) {
	refs := &stubReferences{inUse: map[int64]bool{2: true}}
	module := newTestModule(t).WithUserReferences(refs)
	ctx := context.Background()
	admin := adminPrincipal(t, module)

	if _, err := module.Handler.DeleteUserHandler(ctx, admin, 2); !errors.Is(err, domainerrors.ErrUserInUse) {
		t.Fatalf("expected user in use, got %v", err)
	}
	if _, err := module.Store.GetUser(ctx, 2); err != nil {
		t.Fatalf("referenced user must survive: %v", err)
	}
	if len(refs.released) != 0 {
		t.Fatalf("expected no release on refusal, got %v", refs.released)
	}

	created, err := module.Handler.RegisterUserHandler(ctx, httptransport.CreateUserRequest{
		Username: "teacher-two",
		Password: "secret1",
		Role:     "teacher",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := module.Handler.DeleteUserHandler(ctx, admin, created.ID); err != nil {
		t.Fatalf("delete unreferenced user: %v", err)
	}
	if len(refs.released) != 1 || refs.released[0] != created.ID {
		t.Fatalf("expected release of %d, got %v", created.ID, refs.released)
	}
}

func TestPublicAdminSignupIsOptIn(t *testing.T) {
	module := newTestModule(t).WithPublicAdminSignup(true)
	ctx := context.Background()

	created, err := module.Handler.RegisterUserHandler(ctx, httptransport.CreateUserRequest{
		Username: "second-admin",
		Password: "secret1",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("expected public admin signup to succeed, got %v", err)
	}
	if created.Role != "admin" {
		t.Fatalf("expected admin role, got %q", created.Role)
	}

	module = module.WithPublicAdminSignup(false)
	_, err = module.Handler.RegisterUserHandler(ctx, httptransport.CreateUserRequest{
		Username: "third-admin",
		Password: "secret1",
		Role:     "admin",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden once disabled, got %v", err)
	}
}
