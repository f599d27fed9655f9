package postgresadapter

import (
	"time"

	"classtrack/contexts/academics/classroom-service/domain/entities"
)

const (
	constraintClassName         = "uq_classes_name"
	constraintClassCode         = "uq_classes_code"
	constraintSubmissionStudent = "uq_submissions_assignment_student"
)

// memberModel maps only the key of the users table owned by identity-access.
// It exists so foreign keys can be declared; this adapter never writes it.
type memberModel struct {
	ID int64 `gorm:"column:id;primaryKey"`
}

func (memberModel) TableName() string {
	return "users"
}

type classModel struct {
	ID        int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string       `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_classes_name"`
	Code      string       `gorm:"column:code;type:varchar(64);not null;uniqueIndex:uq_classes_code"`
	TeacherID *int64       `gorm:"column:teacher_id;index"`
	Teacher   *memberModel `gorm:"foreignKey:TeacherID;references:ID;constraint:OnDelete:SET NULL"`
}

func (classModel) TableName() string {
	return "classes"
}

type enrollmentModel struct {
	ID         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	ClassID    int64        `gorm:"column:class_id;not null;index"`
	StudentID  int64        `gorm:"column:student_id;not null;index"`
	EnrolledAt time.Time    `gorm:"column:enrolled_at;not null"`
	Class      *classModel  `gorm:"foreignKey:ClassID;references:ID;constraint:OnDelete:RESTRICT"`
	Student    *memberModel `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (enrollmentModel) TableName() string {
	return "enrollments"
}

type assignmentModel struct {
	ID          int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string       `gorm:"column:name;type:varchar(255);not null"`
	Description *string      `gorm:"column:description;type:text"`
	ClassID     int64        `gorm:"column:class_id;not null;index"`
	CreatorID   int64        `gorm:"column:creator_id;not null;index"`
	CreatedAt   time.Time    `gorm:"column:created_at;not null"`
	Class       *classModel  `gorm:"foreignKey:ClassID;references:ID;constraint:OnDelete:RESTRICT"`
	Creator     *memberModel `gorm:"foreignKey:CreatorID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (assignmentModel) TableName() string {
	return "assignments"
}

type submissionModel struct {
	ID               int64            `gorm:"column:id;primaryKey;autoIncrement"`
	AssignmentID     int64            `gorm:"column:assignment_id;not null;uniqueIndex:uq_submissions_assignment_student,priority:1"`
	StudentID        int64            `gorm:"column:student_id;not null;uniqueIndex:uq_submissions_assignment_student,priority:2"`
	Grade            *float64         `gorm:"column:grade"`
	TimeSpentMinutes int              `gorm:"column:time_spent_minutes;not null"`
	SubmittedAt      time.Time        `gorm:"column:submitted_at;not null"`
	GradedAt         *time.Time       `gorm:"column:graded_at"`
	Assignment       *assignmentModel `gorm:"foreignKey:AssignmentID;references:ID;constraint:OnDelete:RESTRICT"`
	Student          *memberModel     `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func classModelFromEntity(class entities.Class) classModel {
	return classModel{
		ID:        class.ClassID,
		Name:      class.Name,
		Code:      class.Code,
		TeacherID: class.TeacherID,
	}
}

func (m classModel) toEntity() entities.Class {
	return entities.Class{
		ClassID:   m.ID,
		Name:      m.Name,
		Code:      m.Code,
		TeacherID: m.TeacherID,
	}
}

func (m enrollmentModel) toEntity() entities.Enrollment {
	return entities.Enrollment{
		EnrollmentID: m.ID,
		ClassID:      m.ClassID,
		StudentID:    m.StudentID,
		EnrolledAt:   m.EnrolledAt.UTC(),
	}
}

func (m assignmentModel) toEntity() entities.Assignment {
	return entities.Assignment{
		AssignmentID: m.ID,
		Name:         m.Name,
		Description:  m.Description,
		ClassID:      m.ClassID,
		CreatorID:    m.CreatorID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (m submissionModel) toEntity() entities.Submission {
	submission := entities.Submission{
		SubmissionID:     m.ID,
		AssignmentID:     m.AssignmentID,
		StudentID:        m.StudentID,
		Grade:            m.Grade,
		TimeSpentMinutes: m.TimeSpentMinutes,
		SubmittedAt:      m.SubmittedAt.UTC(),
	}
	if m.GradedAt != nil {
		gradedAt := m.GradedAt.UTC()
		submission.GradedAt = &gradedAt
	}
	return submission
}
