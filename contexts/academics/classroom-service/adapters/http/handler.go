package httpadapter

import (
	"context"
	"log/slog"

	application "classtrack/contexts/academics/classroom-service/application"
	"classtrack/contexts/academics/classroom-service/application/commands"
	"classtrack/contexts/academics/classroom-service/application/queries"
	"classtrack/contexts/academics/classroom-service/domain/entities"
	"classtrack/contexts/academics/classroom-service/ports"
	httptransport "classtrack/contexts/academics/classroom-service/transport/http"
	"classtrack/internal/shared/paging"

	"github.com/samber/lo"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	CreateClass      commands.CreateClassUseCase
	UpdateClass      commands.UpdateClassUseCase
	DeleteClass      commands.DeleteClassUseCase
	EnrollStudent    commands.EnrollStudentUseCase
	CreateAssignment commands.CreateAssignmentUseCase
	CreateSubmission commands.CreateSubmissionUseCase
	GradeSubmission  commands.GradeSubmissionUseCase
	GetClass         queries.GetClassUseCase
	ListClasses      queries.ListClassesUseCase
	CountClasses     queries.CountClassesUseCase
	ListEnrollments  queries.ListEnrollmentsUseCase
	ListAssignments  queries.ListAssignmentsUseCase
	GetAssignment    queries.GetAssignmentUseCase
	ListSubmissions  queries.ListSubmissionsUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateClassHandler(
	ctx context.Context,
	actor entities.Actor,
	request httptransport.CreateClassRequest,
) (httptransport.ClassResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http create class received",
		"event", "classroom_http_create_class_received",
		"module", "academics/classroom-service",
		"layer", "transport",
		"actor_id", actor.UserID,
	)

	class, err := h.CreateClass.Execute(ctx, commands.CreateClassCommand{
		Actor:     actor,
		Name:      request.Name,
		Code:      request.Code,
		TeacherID: request.TeacherID,
	})
	if err != nil {
		return httptransport.ClassResponse{}, err
	}
	return toClassResponse(class), nil
}

func (h Handler) UpdateClassHandler(
	ctx context.Context,
	actor entities.Actor,
	classID int64,
	request httptransport.UpdateClassRequest,
) (httptransport.ClassResponse, error) {
	class, err := h.UpdateClass.Execute(ctx, commands.UpdateClassCommand{
		Actor:     actor,
		ClassID:   classID,
		Name:      request.Name,
		Code:      request.Code,
		TeacherID: request.TeacherID,
	})
	if err != nil {
		return httptransport.ClassResponse{}, err
	}
	return toClassResponse(class), nil
}

func (h Handler) DeleteClassHandler(ctx context.Context, actor entities.Actor, classID int64) (httptransport.MessageResponse, error) {
	if err := h.DeleteClass.Execute(ctx, commands.DeleteClassCommand{
		Actor:   actor,
		ClassID: classID,
	}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Class deleted successfully"}, nil
}

func (h Handler) GetClassHandler(ctx context.Context, classID int64) (httptransport.ClassResponse, error) {
	class, err := h.GetClass.Execute(ctx, classID)
	if err != nil {
		return httptransport.ClassResponse{}, err
	}
	return toClassResponse(class), nil
}

func (h Handler) ListClassesHandler(
	ctx context.Context,
	actor entities.Actor,
	filter ports.ClassFilter,
	page paging.Page,
) ([]httptransport.ClassResponse, error) {
	classes, err := h.ListClasses.Execute(ctx, queries.ListClassesQuery{
		Actor:  actor,
		Filter: filter,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(classes, func(class entities.Class, _ int) httptransport.ClassResponse {
		return toClassResponse(class)
	}), nil
}

// ExportClassesHandler returns every class without pagination.
func (h Handler) ExportClassesHandler(ctx context.Context, actor entities.Actor) ([]httptransport.ClassResponse, error) {
	return h.ListClassesHandler(ctx, actor, ports.ClassFilter{}, paging.All())
}

func (h Handler) CountClassesHandler(ctx context.Context, actor entities.Actor) (httptransport.CountResponse, error) {
	count, err := h.CountClasses.Execute(ctx, actor)
	if err != nil {
		return httptransport.CountResponse{}, err
	}
	return httptransport.CountResponse{Count: count}, nil
}

func (h Handler) EnrollStudentHandler(
	ctx context.Context,
	actor entities.Actor,
	classID int64,
	request httptransport.EnrollStudentRequest,
) (httptransport.EnrollmentResponse, error) {
	enrollment, err := h.EnrollStudent.Execute(ctx, commands.EnrollStudentCommand{
		Actor:     actor,
		ClassID:   classID,
		StudentID: request.StudentID,
	})
	if err != nil {
		return httptransport.EnrollmentResponse{}, err
	}
	return toEnrollmentResponse(enrollment), nil
}

func (h Handler) ListEnrollmentsHandler(ctx context.Context, actor entities.Actor, classID int64) ([]httptransport.EnrollmentResponse, error) {
	enrollments, err := h.ListEnrollments.Execute(ctx, queries.ClassScopedQuery{
		Actor:   actor,
		ClassID: classID,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(enrollments, func(enrollment entities.Enrollment, _ int) httptransport.EnrollmentResponse {
		return toEnrollmentResponse(enrollment)
	}), nil
}

func (h Handler) CreateAssignmentHandler(
	ctx context.Context,
	actor entities.Actor,
	request httptransport.CreateAssignmentRequest,
) (httptransport.AssignmentResponse, error) {
	assignment, err := h.CreateAssignment.Execute(ctx, commands.CreateAssignmentCommand{
		Actor:       actor,
		Name:        request.Name,
		Description: request.Description,
		ClassID:     request.ClassID,
	})
	if err != nil {
		return httptransport.AssignmentResponse{}, err
	}
	return toAssignmentResponse(assignment), nil
}

func (h Handler) GetAssignmentHandler(ctx context.Context, assignmentID int64) (httptransport.AssignmentResponse, error) {
	assignment, err := h.GetAssignment.Execute(ctx, assignmentID)
	if err != nil {
		return httptransport.AssignmentResponse{}, err
	}
	return toAssignmentResponse(assignment), nil
}

func (h Handler) ListAssignmentsHandler(ctx context.Context, actor entities.Actor, classID int64) ([]httptransport.AssignmentResponse, error) {
	assignments, err := h.ListAssignments.Execute(ctx, queries.ClassScopedQuery{
		Actor:   actor,
		ClassID: classID,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(assignments, func(assignment entities.Assignment, _ int) httptransport.AssignmentResponse {
		return toAssignmentResponse(assignment)
	}), nil
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	actor entities.Actor,
	request httptransport.CreateSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http create submission received",
		"event", "classroom_http_create_submission_received",
		"module", "academics/classroom-service",
		"layer", "transport",
		"actor_id", actor.UserID,
		"assignment_id", request.AssignmentID,
	)

	submission, err := h.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
		Actor:            actor,
		AssignmentID:     request.AssignmentID,
		StudentID:        request.StudentID,
		TimeSpentMinutes: request.TimeSpentMinutes,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return toSubmissionResponse(submission), nil
}

func (h Handler) GradeSubmissionHandler(
	ctx context.Context,
	actor entities.Actor,
	submissionID int64,
	request httptransport.GradeSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	submission, err := h.GradeSubmission.Execute(ctx, commands.GradeSubmissionCommand{
		Actor:        actor,
		SubmissionID: submissionID,
		Grade:        request.Grade,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return toSubmissionResponse(submission), nil
}

func (h Handler) ListSubmissionsHandler(ctx context.Context, actor entities.Actor, assignmentID int64) ([]httptransport.SubmissionResponse, error) {
	submissions, err := h.ListSubmissions.Execute(ctx, queries.ListSubmissionsQuery{
		Actor:        actor,
		AssignmentID: assignmentID,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(submissions, func(submission entities.Submission, _ int) httptransport.SubmissionResponse {
		return toSubmissionResponse(submission)
	}), nil
}

func toClassResponse(class entities.Class) httptransport.ClassResponse {
	return httptransport.ClassResponse{
		ID:        class.ClassID,
		Name:      class.Name,
		Code:      class.Code,
		TeacherID: class.TeacherID,
	}
}

func toEnrollmentResponse(enrollment entities.Enrollment) httptransport.EnrollmentResponse {
	return httptransport.EnrollmentResponse{
		ID:         enrollment.EnrollmentID,
		ClassID:    enrollment.ClassID,
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt,
	}
}

func toAssignmentResponse(assignment entities.Assignment) httptransport.AssignmentResponse {
	return httptransport.AssignmentResponse{
		ID:          assignment.AssignmentID,
		Name:        assignment.Name,
		Description: assignment.Description,
		ClassID:     assignment.ClassID,
		CreatorID:   assignment.CreatorID,
		CreatedAt:   assignment.CreatedAt,
	}
}

func toSubmissionResponse(submission entities.Submission) httptransport.SubmissionResponse {
	return httptransport.SubmissionResponse{
		ID:               submission.SubmissionID,
		AssignmentID:     submission.AssignmentID,
		StudentID:        submission.StudentID,
		Grade:            submission.Grade,
		TimeSpentMinutes: submission.TimeSpentMinutes,
		SubmittedAt:      submission.SubmittedAt,
		GradedAt:         submission.GradedAt,
	}
}
