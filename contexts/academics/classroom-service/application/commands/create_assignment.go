package commands

import (
	"context"
	"log/slog"
	"strings"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

// CreateAssignmentCommand is authored by Actor; the creator is never taken from input.
type CreateAssignmentCommand struct {
	Actor       entities.Actor
	Name        string
	Description *string
	ClassID     int64
}

type CreateAssignmentUseCase struct {
	Classes     ports.ClassRepository
	Assignments ports.AssignmentRepository
	Members     ports.MemberDirectory
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (u CreateAssignmentUseCase) Execute(ctx context.Context, cmd CreateAssignmentCommand) (entities.Assignment, error) {
	logger := application.ResolveLogger(u.Logger)

	if !cmd.Actor.Role.CanAuthor() {
		return entities.Assignment{}, domainerrors.ErrForbidden
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Assignment{}, domainerrors.ErrInvalidAssignmentName
	}
	if cmd.ClassID <= 0 {
		return entities.Assignment{}, domainerrors.ErrInvalidClassID
	}
	if _, err := u.Classes.GetClass(ctx, cmd.ClassID); err != nil {
		return entities.Assignment{}, err
	}

	// Creator role is re-read from the directory, not taken from the token.
	role, found, err := lookupRole(ctx, u.Members, cmd.Actor.UserID)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !found || !role.CanAuthor() {
		return entities.Assignment{}, domainerrors.ErrCreatorNotAuthorized
	}

	assignment, err := u.Assignments.CreateAssignment(ctx, entities.Assignment{
		Name:        name,
		Description: cmd.Description,
		ClassID:     cmd.ClassID,
		CreatorID:   cmd.Actor.UserID,
		CreatedAt:   nowFrom(u.Clock),
	})
	if err != nil {
		logger.Error("create assignment failed",
			"event", "classroom_create_assignment_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"class_id", cmd.ClassID,
			"creator_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return entities.Assignment{}, err
	}

	logger.Info("assignment created",
		"event", "classroom_assignment_created",
		"module", "academics/classroom-service",
		"layer", "application",
		"assignment_id", assignment.AssignmentID,
		"class_id", assignment.ClassID,
		"creator_id", assignment.CreatorID,
	)
	return assignment, nil
}
