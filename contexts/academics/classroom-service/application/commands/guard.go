package commands

import (
	"context"
	"fmt"
	"time"

	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

func requireAdmin(actor entities.Actor) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}
	return nil
}

func lookupRole(ctx context.Context, members ports.MemberDirectory, userID int64) (entities.Role, bool, error) {
	role, found, err := members.LookupRole(ctx, userID)
	if err != nil || !found {
		return "", found, err
	}
	return entities.Role(role), true, nil
}

// ensureTeacher accepts a nil teacher (unassigned class).
func ensureTeacher(ctx context.Context, members ports.MemberDirectory, teacherID *int64) error {
	if teacherID == nil {
		return nil
	}
	role, found, err := lookupRole(ctx, members, *teacherID)
	if err != nil {
		return err
	}
	if !found || role != entities.RoleTeacher {
		return fmt.Errorf("%w: user %d", domainerrors.ErrInvalidTeacher, *teacherID)
	}
	return nil
}

// ensureClassNameFree allows ownerID (0 for none) to keep its own name.
func ensureClassNameFree(ctx context.Context, classes ports.ClassRepository, name string, ownerID int64) error {
	existing, found, err := classes.FindClassByName(ctx, name)
	if err != nil {
		return err
	}
	if found && existing.ClassID != ownerID {
		return fmt.Errorf("%w: %q", domainerrors.ErrClassNameTaken, name)
	}
	return nil
}

func ensureClassCodeFree(ctx context.Context, classes ports.ClassRepository, code string, ownerID int64) error {
	existing, found, err := classes.FindClassByCode(ctx, code)
	if err != nil {
		return err
	}
	if found && existing.ClassID != ownerID {
		return fmt.Errorf("%w: %q", domainerrors.ErrClassCodeTaken, code)
	}
	return nil
}

func nowFrom(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
