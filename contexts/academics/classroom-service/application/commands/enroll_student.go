package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

type EnrollStudentCommand struct {
	Actor     entities.Actor
	ClassID   int64
	StudentID int64
}

// EnrollStudentUseCase records a student in a class. Repeated enrollments
// of the same pair are accepted and stored as separate rows.
type EnrollStudentUseCase struct {
	Classes     ports.ClassRepository
	Enrollments ports.EnrollmentRepository
	Members     ports.MemberDirectory
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (u EnrollStudentUseCase) Execute(ctx context.Context, cmd EnrollStudentCommand) (entities.Enrollment, error) {
	logger := application.ResolveLogger(u.Logger)

	if err := requireAdmin(cmd.Actor); err != nil {
		return entities.Enrollment{}, err
	}
	if cmd.ClassID <= 0 {
		return entities.Enrollment{}, domainerrors.ErrInvalidClassID
	}
	if _, err := u.Classes.GetClass(ctx, cmd.ClassID); err != nil {
		return entities.Enrollment{}, err
	}
	if err := ensureStudent(ctx, u.Members, cmd.StudentID); err != nil {
		return entities.Enrollment{}, err
	}

	enrollment, err := u.Enrollments.CreateEnrollment(ctx, entities.Enrollment{
		ClassID:    cmd.ClassID,
		StudentID:  cmd.StudentID,
		EnrolledAt: nowFrom(u.Clock),
	})
	if err != nil {
		logger.Error("enroll student failed",
			"event", "classroom_enroll_student_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"class_id", cmd.ClassID,
			"student_id", cmd.StudentID,
			"error", err.Error(),
		)
		return entities.Enrollment{}, err
	}

	logger.Info("student enrolled",
		"event", "classroom_student_enrolled",
		"module", "academics/classroom-service",
		"layer", "application",
		"enrollment_id", enrollment.EnrollmentID,
		"class_id", cmd.ClassID,
		"student_id", cmd.StudentID,
		"actor_id", cmd.Actor.UserID,
	)
	return enrollment, nil
}

func ensureStudent(ctx context.Context, members ports.MemberDirectory, studentID int64) error {
	role, found, err := lookupRole(ctx, members, studentID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: user %d", domainerrors.ErrStudentNotFound, studentID)
	}
	if role != entities.RoleStudent {
		return fmt.Errorf("%w: user %d", domainerrors.ErrNotAStudent, studentID)
	}
	return nil
}
