package queries

import (
	"context"
	"log/slog"
	"strings"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
	"classtrack/internal/shared/paging"
)

type GetClassUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (u GetClassUseCase) Execute(ctx context.Context, classID int64) (entities.Class, error) {
	if classID <= 0 {
		return entities.Class{}, domainerrors.ErrInvalidClassID
	}
	return u.Classes.GetClass(ctx, classID)
}

// ListClassesQuery selects one listing: all, search, by teacher, or unassigned.
type ListClassesQuery struct {
	Actor  entities.Actor
	Filter ports.ClassFilter
	Page   paging.Page
}

// ListClassesUseCase is admin-only, except that a teacher may list their own classes.
type ListClassesUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (u ListClassesUseCase) Execute(ctx context.Context, query ListClassesQuery) ([]entities.Class, error) {
	logger := application.ResolveLogger(u.Logger)

	ownClasses := query.Filter.TeacherID != nil && *query.Filter.TeacherID == query.Actor.UserID
	if !query.Actor.IsAdmin() && !(ownClasses && query.Actor.Role == entities.RoleTeacher) {
		return nil, domainerrors.ErrForbidden
	}
	if query.Page.Skip < 0 || query.Page.Limit < 0 {
		return nil, paging.ErrInvalidPage
	}
	filter := query.Filter
	filter.Search = strings.TrimSpace(filter.Search)

	classes, err := u.Classes.ListClasses(ctx, filter, query.Page)
	if err != nil {
		logger.Error("list classes failed",
			"event", "classroom_list_classes_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"actor_id", query.Actor.UserID,
			"error", err.Error(),
		)
		return nil, err
	}
	return classes, nil
}

type CountClassesUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (u CountClassesUseCase) Execute(ctx context.Context, actor entities.Actor) (int64, error) {
	if !actor.IsAdmin() {
		return 0, domainerrors.ErrForbidden
	}
	return u.Classes.CountClasses(ctx)
}
