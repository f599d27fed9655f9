package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/ports"
)

// MemberUsage lets the account owner ask whether a user can be removed and
// detach it from classroom rows afterwards. It uses only builtin types so the
// owner can declare a matching port without importing this module.
type MemberUsage struct {
	References ports.MemberReferenceRepository
	Logger     *slog.Logger
}

// UserInUse reports whether enrollments, assignments or submissions point at userID.
func (u MemberUsage) UserInUse(ctx context.Context, userID int64) (bool, error) {
	return u.References.IsMemberReferenced(ctx, userID)
}

// ReleaseUser clears the teacher of every class taught by userID.
func (u MemberUsage) ReleaseUser(ctx context.Context, userID int64) error {
	logger := application.ResolveLogger(u.Logger)

	released, err := u.References.ReleaseTeacher(ctx, userID)
	if err != nil {
		logger.Error("release teacher failed",
			"event", "classroom_release_teacher_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return err
	}
	if released > 0 {
		logger.Info("teacher released from classes",
			"event", "classroom_teacher_released",
			"module", "academics/classroom-service",
			"layer", "application",
			"user_id", userID,
			"classes", released,
		)
	}
	return nil
}
