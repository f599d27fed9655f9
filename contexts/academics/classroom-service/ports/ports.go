package ports

import (
	"context"
	"time"

	"classtrack/contexts/academics/classroom-service/domain/entities"
	"classtrack/internal/shared/paging"
)

type Clock interface {
	Now() time.Time
}

// MemberDirectory resolves the role of a user account owned by another context.
type MemberDirectory interface {
	LookupRole(ctx context.Context, userID int64) (role string, found bool, err error)
}

// ClassFilter narrows ListClasses. Search matches name or code case-insensitively.
type ClassFilter struct {
	TeacherID      *int64
	UnassignedOnly bool
	Search         string
}

// ClassRepository persists classes. CreateClass and UpdateClass return
// ErrClassNameTaken or ErrClassCodeTaken on a collision with another row.
type ClassRepository interface {
	CreateClass(ctx context.Context, class entities.Class) (entities.Class, error)
	UpdateClass(ctx context.Context, class entities.Class) (entities.Class, error)
	DeleteClass(ctx context.Context, classID int64) error
	GetClass(ctx context.Context, classID int64) (entities.Class, error)
	FindClassByName(ctx context.Context, name string) (entities.Class, bool, error)
	FindClassByCode(ctx context.Context, code string) (entities.Class, bool, error)
	ListClasses(ctx context.Context, filter ClassFilter, page paging.Page) ([]entities.Class, error)
	CountClasses(ctx context.Context) (int64, error)
}

type EnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, enrollment entities.Enrollment) (entities.Enrollment, error)
	IsEnrolled(ctx context.Context, classID int64, studentID int64) (bool, error)
	ListEnrollments(ctx context.Context, classID int64) ([]entities.Enrollment, error)
}

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, assignment entities.Assignment) (entities.Assignment, error)
	GetAssignment(ctx context.Context, assignmentID int64) (entities.Assignment, error)
	ListAssignments(ctx context.Context, classID int64) ([]entities.Assignment, error)
}

// SubmissionRepository persists submissions. CreateSubmission returns
// ErrDuplicateSubmission when the (assignment, student) pair already exists.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) (entities.Submission, error)
	GetSubmission(ctx context.Context, submissionID int64) (entities.Submission, error)
	FindSubmission(ctx context.Context, assignmentID int64, studentID int64) (entities.Submission, bool, error)
	ListSubmissions(ctx context.Context, assignmentID int64) ([]entities.Submission, error)
	GradeSubmission(ctx context.Context, submissionID int64, grade float64, gradedAt time.Time) (entities.Submission, error)
}

// MemberReferenceRepository answers whether classroom rows point at a user
// account, and detaches that account from the classes it teaches.
type MemberReferenceRepository interface {
	IsMemberReferenced(ctx context.Context, userID int64) (bool, error)
	ReleaseTeacher(ctx context.Context, teacherID int64) (int64, error)
}
