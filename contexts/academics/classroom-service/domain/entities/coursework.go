package entities

import "time"

type Enrollment struct {
	EnrollmentID int64
	ClassID      int64
	StudentID    int64
	EnrolledAt   time.Time
}

type Assignment struct {
	AssignmentID int64
	Name         string
	Description  *string
	ClassID      int64
	CreatorID    int64
	CreatedAt    time.Time
}

// Submission is a student's hand-in for one assignment. Grade stays nil
// until a teacher grades it.
type Submission struct {
	SubmissionID     int64
	AssignmentID     int64
	StudentID        int64
	Grade            *float64
	TimeSpentMinutes int
	SubmittedAt      time.Time
	GradedAt         *time.Time
}
