package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
	"classtrack/internal/shared/patch"
)

// UpdateClassCommand carries a partial update. TeacherID set to nil unassigns the class.
type UpdateClassCommand struct {
	Actor     entities.Actor
	ClassID   int64
	Name      patch.Field[string]
	Code      patch.Field[string]
	TeacherID patch.Field[*int64]
}

type UpdateClassUseCase struct {
	Classes ports.ClassRepository
	Members ports.MemberDirectory
	Logger  *slog.Logger
}

func (u UpdateClassUseCase) Execute(ctx context.Context, cmd UpdateClassCommand) (entities.Class, error) {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return entities.Class{}, err
	}
	if cmd.ClassID <= 0 {
		return entities.Class{}, domainerrors.ErrInvalidClassID
	}
	class, err := u.Classes.GetClass(ctx, cmd.ClassID)
	if err != nil {
		return entities.Class{}, err
	}

	if rawName, ok := cmd.Name.Get(); ok {
		name, err := entities.NormalizeClassName(rawName)
		if err != nil {
			return entities.Class{}, err
		}
		if err := ensureClassNameFree(ctx, u.Classes, name, class.ClassID); err != nil {
			return entities.Class{}, err
		}
		class.Name = name
	}
	if rawCode, ok := cmd.Code.Get(); ok {
		code, err := entities.NormalizeClassCode(rawCode)
		if err != nil {
			return entities.Class{}, err
		}
		if err := ensureClassCodeFree(ctx, u.Classes, code, class.ClassID); err != nil {
			return entities.Class{}, err
		}
		class.Code = code
	}
	if teacherID, ok := cmd.TeacherID.Get(); ok {
		if err := ensureTeacher(ctx, u.Members, teacherID); err != nil {
			return entities.Class{}, err
		}
	}
	cmd.TeacherID.Apply(&class.TeacherID)

	updated, err := u.Classes.UpdateClass(ctx, class)
	if err != nil {
		logger.Error("update class failed",
			"event", "classroom_update_class_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"class_id", cmd.ClassID,
			"actor_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return entities.Class{}, err
	}

	logger.Info("class updated",
		"event", "classroom_class_updated",
		"module", "academics/classroom-service",
		"layer", "application",
		"class_id", updated.ClassID,
		"actor_id", cmd.Actor.UserID,
	)
	return updated, nil
}
