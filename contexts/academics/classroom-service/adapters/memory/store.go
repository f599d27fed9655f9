package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
	"classtrack/internal/shared/paging"
)

// Store is an in-memory adapter implementing every classroom repository port.
// Uniqueness and reference checks run under the same write lock as the insert.
type Store struct {
	mu sync.RWMutex

	classes     map[int64]entities.Class
	enrollments map[int64]entities.Enrollment
	assignments map[int64]entities.Assignment
	submissions map[int64]entities.Submission

	nextClassID      int64
	nextEnrollmentID int64
	nextAssignmentID int64
	nextSubmissionID int64
}

func NewStore() *Store {
	return &Store{
		classes:          make(map[int64]entities.Class),
		enrollments:      make(map[int64]entities.Enrollment),
		assignments:      make(map[int64]entities.Assignment),
		submissions:      make(map[int64]entities.Submission),
		nextClassID:      1,
		nextEnrollmentID: 1,
		nextAssignmentID: 1,
		nextSubmissionID: 1,
	}
}

func (s *Store) CreateClass(_ context.Context, class entities.Class) (entities.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkClassCollisionLocked(class); err != nil {
		return entities.Class{}, err
	}
	class.ClassID = s.nextClassID
	s.nextClassID++
	class.TeacherID = cloneID(class.TeacherID)
	s.classes[class.ClassID] = class
	return cloneClass(class), nil
}

func (s *Store) UpdateClass(_ context.Context, class entities.Class) (entities.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[class.ClassID]; !ok {
		return entities.Class{}, domainerrors.ErrClassNotFound
	}
	if err := s.checkClassCollisionLocked(class); err != nil {
		return entities.Class{}, err
	}
	class.TeacherID = cloneID(class.TeacherID)
	s.classes[class.ClassID] = class
	return cloneClass(class), nil
}

func (s *Store) DeleteClass(_ context.Context, classID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[classID]; !ok {
		return domainerrors.ErrClassNotFound
	}
	for _, enrollment := range s.enrollments {
		if enrollment.ClassID == classID {
			return domainerrors.ErrClassInUse
		}
	}
	for _, assignment := range s.assignments {
		if assignment.ClassID == classID {
			return domainerrors.ErrClassInUse
		}
	}
	delete(s.classes, classID)
	return nil
}

func (s *Store) GetClass(_ context.Context, classID int64) (entities.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	class, ok := s.classes[classID]
	if !ok {
		return entities.Class{}, domainerrors.ErrClassNotFound
	}
	return cloneClass(class), nil
}

func (s *Store) FindClassByName(_ context.Context, name string) (entities.Class, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, class := range s.classes {
		if class.Name == name {
			return cloneClass(class), true, nil
		}
	}
	return entities.Class{}, false, nil
}

func (s *Store) FindClassByCode(_ context.Context, code string) (entities.Class, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, class := range s.classes {
		if class.Code == code {
			return cloneClass(class), true, nil
		}
	}
	return entities.Class{}, false, nil
}

func (s *Store) ListClasses(_ context.Context, filter ports.ClassFilter, page paging.Page) ([]entities.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	items := make([]entities.Class, 0, len(s.classes))
	for _, class := range s.classes {
		if filter.TeacherID != nil && !class.TaughtBy(*filter.TeacherID) {
			continue
		}
		if filter.UnassignedOnly && class.TeacherID != nil {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(class.Name), search) &&
			!strings.Contains(strings.ToLower(class.Code), search) {
			continue
		}
		items = append(items, cloneClass(class))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ClassID < items[j].ClassID
	})
	start, end := page.Window(len(items))
	return items[start:end], nil
}

func (s *Store) CountClasses(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.classes)), nil
}

func (s *Store) CreateEnrollment(_ context.Context, enrollment entities.Enrollment) (entities.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[enrollment.ClassID]; !ok {
		return entities.Enrollment{}, domainerrors.ErrClassNotFound
	}
	enrollment.EnrollmentID = s.nextEnrollmentID
	s.nextEnrollmentID++
	s.enrollments[enrollment.EnrollmentID] = enrollment
	return enrollment, nil
}

func (s *Store) IsEnrolled(_ context.Context, classID int64, studentID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, enrollment := range s.enrollments {
		if enrollment.ClassID == classID && enrollment.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListEnrollments(_ context.Context, classID int64) ([]entities.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Enrollment, 0)
	for _, enrollment := range s.enrollments {
		if enrollment.ClassID == classID {
			items = append(items, enrollment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].EnrollmentID < items[j].EnrollmentID
	})
	return items, nil
}

func (s *Store) CreateAssignment(_ context.Context, assignment entities.Assignment) (entities.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[assignment.ClassID]; !ok {
		return entities.Assignment{}, domainerrors.ErrClassNotFound
	}
	assignment.AssignmentID = s.nextAssignmentID
	s.nextAssignmentID++
	s.assignments[assignment.AssignmentID] = assignment
	return assignment, nil
}

func (s *Store) GetAssignment(_ context.Context, assignmentID int64) (entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.assignments[assignmentID]
	if !ok {
		return entities.Assignment{}, domainerrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (s *Store) ListAssignments(_ context.Context, classID int64) ([]entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.ClassID == classID {
			items = append(items, assignment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AssignmentID < items[j].AssignmentID
	})
	return items, nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) (entities.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assignments[submission.AssignmentID]; !ok {
		return entities.Submission{}, domainerrors.ErrAssignmentNotFound
	}
	for _, existing := range s.submissions {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			return entities.Submission{}, domainerrors.ErrDuplicateSubmission
		}
	}
	submission.SubmissionID = s.nextSubmissionID
	s.nextSubmissionID++
	s.submissions[submission.SubmissionID] = submission
	return submission, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID int64) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submission, ok := s.submissions[submissionID]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *Store) FindSubmission(_ context.Context, assignmentID int64, studentID int64) (entities.Submission, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, submission := range s.submissions {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return submission, true, nil
		}
	}
	return entities.Submission{}, false, nil
}

func (s *Store) ListSubmissions(_ context.Context, assignmentID int64) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, submission := range s.submissions {
		if submission.AssignmentID == assignmentID {
			items = append(items, submission)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmissionID < items[j].SubmissionID
	})
	return items, nil
}

func (s *Store) GradeSubmission(_ context.Context, submissionID int64, grade float64, gradedAt time.Time) (entities.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission, ok := s.submissions[submissionID]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	gradedAt = gradedAt.UTC()
	submission.Grade = &grade
	submission.GradedAt = &gradedAt
	s.submissions[submissionID] = submission
	return submission, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) checkClassCollisionLocked(class entities.Class) error {
	for _, existing := range s.classes {
		if existing.ClassID == class.ClassID {
			continue
		}
		if existing.Name == class.Name {
			return domainerrors.ErrClassNameTaken
		}
		if existing.Code == class.Code {
			return domainerrors.ErrClassCodeTaken
		}
	}
	return nil
}

func cloneClass(class entities.Class) entities.Class {
	class.TeacherID = cloneID(class.TeacherID)
	return class
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}

// IsMemberReferenced reports whether any enrollment, assignment or submission
// belongs to userID. Classes only reference teachers weakly and are ignored.
func (s *Store) IsMemberReferenced(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == userID {
			return true, nil
		}
	}
	for _, assignment := range s.assignments {
		if assignment.CreatorID == userID {
			return true, nil
		}
	}
	for _, submission := range s.submissions {
		if submission.StudentID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ReleaseTeacher clears TeacherID on every class taught by teacherID.
func (s *Store) ReleaseTeacher(_ context.Context, teacherID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var released int64
	for id, class := range s.classes {
		if class.TeacherID != nil && *class.TeacherID == teacherID {
			class.TeacherID = nil
			s.classes[id] = class
			released++
		}
	}
	return released, nil
}
