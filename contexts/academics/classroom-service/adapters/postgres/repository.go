package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"classtrack/contexts/academics/classroom-service/domain/entities"
	domainerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
	"classtrack/internal/shared/paging"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate ensures the classroom tables exist. The users table must already exist.
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&classModel{},
		&enrollmentModel{},
		&assignmentModel{},
		&submissionModel{},
	)
	if err != nil {
		r.logger.Error("classroom schema migration failed",
			"event", "classroom_schema_migration_failed",
			"module", "academics/classroom-service",
			"layer", "adapter",
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) CreateClass(ctx context.Context, class entities.Class) (entities.Class, error) {
	row := classModelFromEntity(class)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Class{}, mapClassWriteError(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateClass(ctx context.Context, class entities.Class) (entities.Class, error) {
	result := r.db.WithContext(ctx).
		Model(&classModel{}).
		Where("id = ?", class.ClassID).
		Updates(map[string]any{
			"name":       class.Name,
			"code":       class.Code,
			"teacher_id": class.TeacherID,
		})
	if result.Error != nil {
		return entities.Class{}, mapClassWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.Class{}, domainerrors.ErrClassNotFound
	}
	return r.GetClass(ctx, class.ClassID)
}

func (r *Repository) DeleteClass(ctx context.Context, classID int64) error {
	result := r.db.WithContext(ctx).Delete(&classModel{}, classID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerrors.ErrClassInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrClassNotFound
	}
	return nil
}

func (r *Repository) GetClass(ctx context.Context, classID int64) (entities.Class, error) {
	var row classModel
	err := r.db.WithContext(ctx).
		Where("id = ?", classID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Class{}, domainerrors.ErrClassNotFound
		}
		return entities.Class{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindClassByName(ctx context.Context, name string) (entities.Class, bool, error) {
	return r.findClass(ctx, "name = ?", name)
}

func (r *Repository) FindClassByCode(ctx context.Context, code string) (entities.Class, bool, error) {
	return r.findClass(ctx, "code = ?", code)
}

func (r *Repository) findClass(ctx context.Context, query string, value string) (entities.Class, bool, error) {
	var rows []classModel
	err := r.db.WithContext(ctx).
		Where(query, value).
		Limit(1).
		Find(&rows).
		Error
	if err != nil {
		return entities.Class{}, false, err
	}
	if len(rows) == 0 {
		return entities.Class{}, false, nil
	}
	return rows[0].toEntity(), true, nil
}

func (r *Repository) ListClasses(ctx context.Context, filter ports.ClassFilter, page paging.Page) ([]entities.Class, error) {
	tx := r.db.WithContext(ctx).Model(&classModel{})
	if filter.TeacherID != nil {
		tx = tx.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.UnassignedOnly {
		tx = tx.Where("teacher_id IS NULL")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		tx = tx.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var rows []classModel
	if err := tx.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Class, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountClasses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&classModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) CreateEnrollment(ctx context.Context, enrollment entities.Enrollment) (entities.Enrollment, error) {
	row := enrollmentModel{
		ClassID:    enrollment.ClassID,
		StudentID:  enrollment.StudentID,
		EnrolledAt: enrollment.EnrolledAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return entities.Enrollment{}, domainerrors.ErrClassNotFound
		}
		return entities.Enrollment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) IsEnrolled(ctx context.Context, classID int64, studentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&enrollmentModel{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListEnrollments(ctx context.Context, classID int64) ([]entities.Enrollment, error) {
	var rows []enrollmentModel
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Enrollment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateAssignment(ctx context.Context, assignment entities.Assignment) (entities.Assignment, error) {
	row := assignmentModel{
		Name:        assignment.Name,
		Description: assignment.Description,
		ClassID:     assignment.ClassID,
		CreatorID:   assignment.CreatorID,
		CreatedAt:   assignment.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return entities.Assignment{}, domainerrors.ErrClassNotFound
		}
		return entities.Assignment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAssignment(ctx context.Context, assignmentID int64) (entities.Assignment, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("id = ?", assignmentID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Assignment{}, domainerrors.ErrAssignmentNotFound
		}
		return entities.Assignment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAssignments(ctx context.Context, classID int64) ([]entities.Assignment, error) {
	var rows []assignmentModel
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Assignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) (entities.Submission, error) {
	row := submissionModel{
		AssignmentID:     submission.AssignmentID,
		StudentID:        submission.StudentID,
		Grade:            submission.Grade,
		TimeSpentMinutes: submission.TimeSpentMinutes,
		SubmittedAt:      submission.SubmittedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		switch {
		case isUniqueViolation(err, constraintSubmissionStudent):
			return entities.Submission{}, domainerrors.ErrDuplicateSubmission
		case isForeignKeyViolation(err):
			return entities.Submission{}, domainerrors.ErrAssignmentNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID int64) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", submissionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) FindSubmission(ctx context.Context, assignmentID int64, studentID int64) (entities.Submission, bool, error) {
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Limit(1).
		Find(&rows).
		Error
	if err != nil {
		return entities.Submission{}, false, err
	}
	if len(rows) == 0 {
		return entities.Submission{}, false, nil
	}
	return rows[0].toEntity(), true, nil
}

func (r *Repository) ListSubmissions(ctx context.Context, assignmentID int64) ([]entities.Submission, error) {
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GradeSubmission(
	ctx context.Context,
	submissionID int64,
	grade float64,
	gradedAt time.Time,
) (entities.Submission, error) {
	var graded entities.Submission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row submissionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", submissionID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrSubmissionNotFound
			}
			return err
		}

		gradedAt = gradedAt.UTC()
		if err := tx.Model(&submissionModel{}).
			Where("id = ?", submissionID).
			Updates(map[string]any{
				"grade":     grade,
				"graded_at": gradedAt,
			}).Error; err != nil {
			return err
		}
		row.Grade = &grade
		row.GradedAt = &gradedAt
		graded = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Submission{}, err
	}
	return graded, nil
}

func (r *Repository) IsMemberReferenced(ctx context.Context, userID int64) (bool, error) {
	checks := []struct {
		model  any
		clause string
	}{
		{&enrollmentModel{}, "student_id = ?"},
		{&assignmentModel{}, "creator_id = ?"},
		{&submissionModel{}, "student_id = ?"},
	}
	for _, check := range checks {
		var count int64
		err := r.db.WithContext(ctx).
			Model(check.model).
			Where(check.clause, userID).
			Limit(1).
			Count(&count).
			Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// ReleaseTeacher mirrors the ON DELETE SET NULL on classes.teacher_id, so it is
// a no-op once the users row is gone.
func (r *Repository) ReleaseTeacher(ctx context.Context, teacherID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&classModel{}).
		Where("teacher_id = ?", teacherID).
		Update("teacher_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func mapClassWriteError(err error) error {
	switch {
	case isUniqueViolation(err, constraintClassName):
		return domainerrors.ErrClassNameTaken
	case isUniqueViolation(err, constraintClassCode):
		return domainerrors.ErrClassCodeTaken
	case isForeignKeyViolation(err):
		return domainerrors.ErrInvalidTeacher
	}
	return err
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
