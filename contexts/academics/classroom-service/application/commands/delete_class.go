package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

type DeleteClassCommand struct {
	Actor   entities.Actor
	ClassID int64
}

type DeleteClassUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

// Execute checks the caller before the class, so non-admins never learn whether it exists.
func (u DeleteClassUseCase) Execute(ctx context.Context, cmd DeleteClassCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return err
	}
	if cmd.ClassID <= 0 {
		return domainerrors.ErrInvalidClassID
	}
	if _, err := u.Classes.GetClass(ctx, cmd.ClassID); err != nil {
		return err
	}
	if err := u.Classes.DeleteClass(ctx, cmd.ClassID); err != nil {
		logger.Error("delete class failed",
			"event", "classroom_delete_class_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"class_id", cmd.ClassID,
			"actor_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("class deleted",
		"event", "classroom_class_deleted",
		"module", "academics/classroom-service",
		"layer", "application",
		"class_id", cmd.ClassID,
		"actor_id", cmd.Actor.UserID,
	)
	return nil
}
