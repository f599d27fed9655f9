package commands

import (
	"context"
	"log/slog"
	"math"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
)

type GradeSubmissionCommand struct {
	Actor        entities.Actor
	SubmissionID int64
	Grade        *float64
}

// GradeSubmissionUseCase lets admins grade anything and teachers grade
// submissions for classes they teach. Regrading overwrites the grade.
type GradeSubmissionUseCase struct {
	Classes     ports.ClassRepository
	Assignments ports.AssignmentRepository
	Submissions ports.SubmissionRepository
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (u GradeSubmissionUseCase) Execute(ctx context.Context, cmd GradeSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(u.Logger)

	if !cmd.Actor.Role.CanAuthor() {
		return entities.Submission{}, domainerrors.ErrForbidden
	}
	if cmd.SubmissionID <= 0 {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionID
	}
	if cmd.Grade == nil || *cmd.Grade < 0 || math.IsNaN(*cmd.Grade) || math.IsInf(*cmd.Grade, 0) {
		return entities.Submission{}, domainerrors.ErrInvalidGrade
	}

	submission, err := u.Submissions.GetSubmission(ctx, cmd.SubmissionID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !cmd.Actor.IsAdmin() {
		assignment, err := u.Assignments.GetAssignment(ctx, submission.AssignmentID)
		if err != nil {
			return entities.Submission{}, err
		}
		class, err := u.Classes.GetClass(ctx, assignment.ClassID)
		if err != nil {
			return entities.Submission{}, err
		}
		if !class.TaughtBy(cmd.Actor.UserID) {
			return entities.Submission{}, domainerrors.ErrForbidden
		}
	}

	graded, err := u.Submissions.GradeSubmission(ctx, cmd.SubmissionID, *cmd.Grade, nowFrom(u.Clock))
	if err != nil {
		logger.Error("grade submission failed",
			"event", "classroom_grade_submission_failed",
			"module", "academics/classroom-service",
			"layer", "application",
			"submission_id", cmd.SubmissionID,
			"actor_id", cmd.Actor.UserID,
			"error", err.Error(),
		)
		return entities.Submission{}, err
	}

	logger.Info("submission graded",
		"event", "classroom_submission_graded",
		"module", "academics/classroom-service",
		"layer", "application",
		"submission_id", graded.SubmissionID,
		"actor_id", cmd.Actor.UserID,
		"grade", *cmd.Grade,
	)
	return graded, nil
}
