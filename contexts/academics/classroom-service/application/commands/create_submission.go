package commands

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

type CreateSubmissionCommand struct {
	Actor            entities.Actor
	AssignmentID     int64
	StudentID        int64
	TimeSpentMinutes *int
}

type CreateSubmissionUseCase struct {
	Assignments ports.AssignmentRepository
	Enrollments ports.EnrollmentRepository
	Submissions ports.SubmissionRepository
	Members     ports.MemberDirectory
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute accepts at most one submission per (assignment, student). The
// enrollment is checked only here, so later enrollment changes do not
// affect stored submissions.
func (u CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.Actor.Role != entities.RoleStudent || cmd.Actor.UserID != cmd.StudentID {
		return entities.Submission{}, domainerrors.ErrForbidden
	}
	if cmd.AssignmentID <= 0 {
		return entities.Submission{}, domainerrors.ErrInvalidAssignmentID
	}
	if cmd.TimeSpentMinutes == nil || *cmd.TimeSpentMinutes < 0 {
		return entities.Submission{}, domainerrors.ErrInvalidTimeSpent
	}

	assignment, err := u.Assignments.GetAssignment(ctx, cmd.AssignmentID)
	if err != nil {
		return entities.Submission{}, err
	}
	if err := ensureStudent(ctx, u.Members, cmd.StudentID); err != nil {
		return entities.Submission{}, err
	}
	enrolled, err := u.Enrollments.IsEnrolled(ctx, assignment.ClassID, cmd.StudentID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !enrolled {
		return entities.Submission{}, domainerrors.ErrNotEnrolled
	}
	if _, found, err := u.Submissions.FindSubmission(ctx, cmd.AssignmentID, cmd.StudentID); err != nil {
		return entities.Submission{}, err
	} else if found {
		return entities.Submission{}, domainerrors.ErrDuplicateSubmission
	}

	submission, err := u.Submissions.CreateSubmission(ctx, entities.Submission{
		AssignmentID:     cmd.AssignmentID,
		StudentID:        cmd.StudentID,
		TimeSpentMinutes: *cmd.TimeSpentMinutes,
		SubmittedAt:      nowFrom(u.Clock),
	})
	if err != nil {
		logger.Error("create submission failed",
			"event", "classroom_create_submission_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"assignment_id", cmd.AssignmentID,
			"student_id", cmd.StudentID,
			"error", err.Error(),
		)
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "classroom_submission_created",
		"module", "academics/classroom-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"assignment_id", submission.AssignmentID,
		"student_id", submission.StudentID,
		"time_spent_minutes", submission.TimeSpentMinutes,
	)
	return submission, nil
}
