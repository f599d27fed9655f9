package memory

import (
	"context"
	"errors"
	"testing"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/internal/shared/paging"
)

func TestStoreAssignsSequentialIDsAndEnforcesUsername(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, entities.User{Username: "alice", Role: entities.RoleStudent})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := store.CreateUser(ctx, entities.User{Username: "bob", Role: entities.RoleTeacher})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.UserID != 1 || second.UserID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.UserID, second.UserID)
	}

	if _, err := store.CreateUser(ctx, entities.User{Username: "alice"}); !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	second.Username = "alice"
	if _, err := store.UpdateUser(ctx, second); !errors.Is(err, domainerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken on rename, got %v", err)
	}
}

func TestStoreRenameReleasesOldUsername(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user, _ := store.CreateUser(ctx, entities.User{Username: "carol", Role: entities.RoleStudent})
	user.Username = "caroline"
	if _, err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := store.GetUserByUsername(ctx, "carol"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected old username to be released, got %v", err)
	}
	if _, err := store.CreateUser(ctx, entities.User{Username: "carol"}); err != nil {
		t.Fatalf("expected old username reusable, got %v", err)
	}
}

func TestStoreListUsersPaginates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for _, name := range []string{"u01", "u02", "u03", "u04"} {
		if _, err := store.CreateUser(ctx, entities.User{Username: name}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := store.ListUsers(ctx, paging.Page{Skip: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Username != "u02" || items[1].Username != "u03" {
		t.Fatalf("unexpected page: %+v", items)
	}

	count, _ := store.CountUsers(ctx)
	if count != 4 {
		t.Fatalf("expected 4 users, got %d", count)
	}
}
