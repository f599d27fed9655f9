package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	"classtrack/contexts/academics/classroom-service/ports"
)

type CreateClassCommand struct {
	Actor     entities.Actor
	Name      string
	Code      string
	TeacherID *int64
}

type CreateClassUseCase struct {
	Classes ports.ClassRepository
	Members ports.MemberDirectory
	Logger  *slog.Logger
}

func (u CreateClassUseCase) Execute(ctx context.Context, cmd CreateClassCommand) (entities.Class, error) {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return entities.Class{}, err
	}
	name, err := entities.NormalizeClassName(cmd.Name)
	if err != nil {
		return entities.Class{}, err
	}
	code, err := entities.NormalizeClassCode(cmd.Code)
	if err != nil {
		return entities.Class{}, err
	}
	if err := ensureClassNameFree(ctx, u.Classes, name, 0); err != nil {
		return entities.Class{}, err
	}
	if err := ensureClassCodeFree(ctx, u.Classes, code, 0); err != nil {
		return entities.Class{}, err
	}
	if err := ensureTeacher(ctx, u.Members, cmd.TeacherID); err != nil {
		return entities.Class{}, err
	}

	class, err := u.Classes.CreateClass(ctx, entities.Class{
		Name:      name,
		Code:      code,
		TeacherID: cmd.TeacherID,
	})
	if err != nil {
		logger.Error("create class failed",
			"event", "classroom_create_class_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"actor_id", cmd.Actor.UserID,
			"code", code,
			"error", err.Error(),
		)
		return entities.Class{}, err
	}

	logger.Info("class created",
		"event", "classroom_class_created",
		"module", "academics/classroom-service",
		"layer", "application",
		"class_id", class.ClassID,
		"code", class.Code,
		"actor_id", cmd.Actor.UserID,
	)
	return class, nil
}
