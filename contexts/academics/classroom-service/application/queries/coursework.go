package queries

import (
	"context"
	"log/slog"

	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

type ClassScopedQuery struct {
	Actor   entities.Actor
	ClassID int64
}

// ListEnrollmentsUseCase is visible to admins and the class teacher.
type ListEnrollmentsUseCase struct {
	Classes     ports.ClassRepository
	Enrollments ports.EnrollmentRepository
	Logger      *slog.Logger
}

func (u ListEnrollmentsUseCase) Execute(ctx context.Context, query ClassScopedQuery) ([]entities.Enrollment, error) {
	class, err := loadClass(ctx, u.Classes, query.ClassID)
	if err != nil {
		return nil, err
	}
	if !query.Actor.IsAdmin() && !class.TaughtBy(query.Actor.UserID) {
		return nil, domainerrors.ErrForbidden
	}
	return u.Enrollments.ListEnrollments(ctx, class.ClassID)
}

// ListAssignmentsUseCase is visible to admins, teachers and students enrolled in the class.
type ListAssignmentsUseCase struct {
	Classes     ports.ClassRepository
	Enrollments ports.EnrollmentRepository
	Assignments ports.AssignmentRepository
	Logger      *slog.Logger
}

func (u ListAssignmentsUseCase) Execute(ctx context.Context, query ClassScopedQuery) ([]entities.Assignment, error) {
	class, err := loadClass(ctx, u.Classes, query.ClassID)
	if err != nil {
		return nil, err
	}
	if !query.Actor.Role.CanAuthor() {
		enrolled, err := u.Enrollments.IsEnrolled(ctx, class.ClassID, query.Actor.UserID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, domainerrors.ErrForbidden
		}
	}
	return u.Assignments.ListAssignments(ctx, class.ClassID)
}

type GetAssignmentUseCase struct {
	Assignments ports.AssignmentRepository
	Logger      *slog.Logger
}

func (u GetAssignmentUseCase) Execute(ctx context.Context, assignmentID int64) (entities.Assignment, error) {
	if assignmentID <= 0 {
		return entities.Assignment{}, domainerrors.ErrInvalidAssignmentID
	}
	return u.Assignments.GetAssignment(ctx, assignmentID)
}

type ListSubmissionsQuery struct {
	Actor        entities.Actor
	AssignmentID int64
}

// ListSubmissionsUseCase is visible to admins and the teacher of the assignment's class.
type ListSubmissionsUseCase struct {
	Classes     ports.ClassRepository
	Assignments ports.AssignmentRepository
	Submissions ports.SubmissionRepository
	Logger      *slog.Logger
}

func (u ListSubmissionsUseCase) Execute(ctx context.Context, query ListSubmissionsQuery) ([]entities.Submission, error) {
	if !query.Actor.Role.CanAuthor() {
		return nil, domainerrors.ErrForbidden
	}
	if query.AssignmentID <= 0 {
		return nil, domainerrors.ErrInvalidAssignmentID
	}
	assignment, err := u.Assignments.GetAssignment(ctx, query.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !query.Actor.IsAdmin() {
		class, err := u.Classes.GetClass(ctx, assignment.ClassID)
		if err != nil {
			return nil, err
		}
		if !class.TaughtBy(query.Actor.UserID) {
			return nil, domainerrors.ErrForbidden
		}
	}
	return u.Submissions.ListSubmissions(ctx, assignment.AssignmentID)
}

func loadClass(ctx context.Context, classes ports.ClassRepository, classID int64) (entities.Class, error) {
	if classID <= 0 {
		return entities.Class{}, domainerrors.ErrInvalidClassID
	}
	return classes.GetClass(ctx, classID)
}
