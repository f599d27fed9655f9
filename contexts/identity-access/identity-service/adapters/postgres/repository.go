package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/internal/shared/paging"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

// Migrate ensures the users table exists. Other contexts reference it, so it runs first.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&userModel{}); err != nil {
		r.logger.Error("identity schema migration failed",
			"event", "identity_schema_migration_failed",
			"module", "identity-access/identity-service",
			"layer", "adapter",
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := userModelFromEntity(user)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrUsernameTaken
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) (entities.User, error) {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", user.UserID).
		Updates(map[string]any{
			"username":        strings.TrimSpace(user.Username),
			"hashed_password": user.PasswordDigest,
			"role":            string(user.Role),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.User{}, domainerrors.ErrUsernameTaken
		}
		return entities.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.GetUser(ctx, user.UserID)
}

func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Delete(&userModel{}, userID)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerrors.ErrUserInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context, page paging.Page) ([]entities.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Order("id ASC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type userModel struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username       string `gorm:"column:username;type:varchar(255);not null;uniqueIndex:uq_users_username"`
	HashedPassword string `gorm:"column:hashed_password;type:varchar(255);not null"`
	Role           string `gorm:"column:role;type:varchar(16);not null"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		ID:             user.UserID,
		Username:       strings.TrimSpace(user.Username),
		HashedPassword: user.PasswordDigest,
		Role:           string(user.Role),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:         m.ID,
		Username:       m.Username,
		PasswordDigest: m.HashedPassword,
		Role:           entities.Role(m.Role),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
