package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// UserWithRole is a joined projection for the admin user list.
type UserWithRole struct {
	ID         uint      `json:"id"`
	Identifier string    `json:"identifier"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	RoleID     uint      `json:"role_id"`
	RoleName   string    `json:"role_name"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	FindByIdentifierOrEmail(ctx context.Context, identifier, email string) (*model.User, error)
	List(ctx context.Context) ([]UserWithRole, error)
	ListOperators(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateRole(ctx context.Context, id uint, roleID uint) error
	UpdateTheme(ctx context.Context, id uint, themeID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Role").Preload("Theme").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin resolves a login string against email first, identifier
// second, so a collision across two users resolves deterministically.
func (r *userRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Role").Preload("Theme").
		Where("email = ?", login).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Preload("Role").Preload("Theme").
		Where("identifier = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIdentifierOrEmail(ctx context.Context, identifier, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("identifier = ? OR email = ?", identifier, email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]UserWithRole, error) {
	var users []UserWithRole
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id, users.identifier, users.email, users.created_at, users.role_id, roles.name AS role_name").
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Order("users.id ASC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListOperators returns users eligible for round assignment.
func (r *userRepository) ListOperators(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role_id >= ?", model.OperatorRoleID).
		Order("identifier ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, roleID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role_id", roleID).Error
}

func (r *userRepository) UpdateTheme(ctx context.Context, id uint, themeID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("theme_id", themeID).Error
}
