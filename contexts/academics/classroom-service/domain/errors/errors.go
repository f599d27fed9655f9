package errors

import "errors"

var (
	ErrInvalidClassName      = errors.New("class name cannot be empty")
	ErrInvalidClassCode      = errors.New("class code must be at least 3 characters long")
	ErrInvalidClassID        = errors.New("class id must be a positive integer")
	ErrInvalidTeacher        = errors.New("teacher not found or wrong role")
	ErrInvalidAssignmentName = errors.New("assignment name cannot be empty")
	ErrInvalidAssignmentID   = errors.New("assignment id must be a positive integer")
	ErrInvalidSubmissionID   = errors.New("submission id must be a positive integer")
	ErrInvalidTimeSpent      = errors.New("time spent minutes is required and must be non-negative")
	ErrInvalidGrade          = errors.New("grade is required and must be a non-negative number")
	ErrNotAStudent           = errors.New("user is not a student")
	ErrNotEnrolled           = errors.New("student is not enrolled in the assignment's class")

	ErrClassNameTaken      = errors.New("class name already exists")
	ErrClassCodeTaken      = errors.New("class code already exists")
	ErrClassInUse          = errors.New("class is still referenced")
	ErrDuplicateSubmission = errors.New("duplicate submission")

	ErrClassNotFound      = errors.New("class not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrStudentNotFound    = errors.New("student not found")

	ErrForbidden            = errors.New("forbidden")
	ErrCreatorNotAuthorized = errors.New("not authorized to create assignments")
)
