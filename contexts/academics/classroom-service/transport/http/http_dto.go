package httptransport

import (
	"time"

	"classtrack/internal/shared/patch"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateClassRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	TeacherID *int64 `json:"teacher_id,omitempty"`
}

// UpdateClassRequest decodes absent keys as unset; "teacher_id": null unassigns.
type UpdateClassRequest struct {
	Name      patch.Field[string] `json:"name"`
	Code      patch.Field[string] `json:"code"`
	TeacherID patch.Field[*int64] `json:"teacher_id"`
}

type ClassResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	TeacherID *int64 `json:"teacher_id"`
}

type EnrollStudentRequest struct {
	StudentID int64 `json:"student_id"`
}

type EnrollmentResponse struct {
	ID         int64     `json:"id"`
	ClassID    int64     `json:"class_id"`
	StudentID  int64     `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type CreateAssignmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ClassID     int64   `json:"class_id"`
}

type AssignmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ClassID     int64     `json:"class_id"`
	CreatorID   int64     `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateSubmissionRequest struct {
	AssignmentID     int64 `json:"assignment_id"`
	StudentID        int64 `json:"student_id"`
	TimeSpentMinutes *int  `json:"time_spent_minutes"`
}

type GradeSubmissionRequest struct {
	Grade *float64 `json:"grade"`
}

type SubmissionResponse struct {
	ID               int64      `json:"id"`
	AssignmentID     int64      `json:"assignment_id"`
	StudentID        int64      `json:"student_id"`
	Grade            *float64   `json:"grade"`
	TimeSpentMinutes int        `json:"time_spent_minutes"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	GradedAt         *time.Time `json:"graded_at,omitempty"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
