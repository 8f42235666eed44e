// internal/repository/user.go
package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	// RoleByEmail is a projection-only read; the access-control pipeline calls
	// it exactly once per protected request.
	RoleByEmail(email string) (models.Role, error)
	List(emailFilter string, params utils.PaginationParams) ([]models.User, int64, error)
	UpdateRole(id uuid.UUID, role models.Role) error
	UpdateRoleByEmail(email string, role models.Role) error
	UpdateProfile(email, name, photo string) error
	TouchLastSignedIn(email string, at time.Time) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(user *models.User) error {
	return translate(r.db.Create(user).Error)
}

func (r *gormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUserRepository) RoleByEmail(email string) (models.Role, error) {
	var role models.Role
	err := r.db.Model(&models.User{}).
		Select("role").
		Where("email = ?", email).
		Take(&role).Error
	if err != nil {
		return "", translate(err)
	}
	return role, nil
}

func (r *gormUserRepository) List(emailFilter string, params utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if emailFilter != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(emailFilter)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	allowedSortFields := []string{"created_at", "email", "name", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}

	return users, total, nil
}

func (r *gormUserRepository) UpdateRole(id uuid.UUID, role models.Role) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) UpdateRoleByEmail(email string, role models.Role) error {
	result := r.db.Model(&models.User{}).Where("email = ?", email).Update("role", role)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) UpdateProfile(email, name, photo string) error {
	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if photo != "" {
		updates["photo"] = photo
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&models.User{}).Where("email = ?", email).Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) TouchLastSignedIn(email string, at time.Time) error {
	result := r.db.Model(&models.User{}).Where("email = ?", email).Update("last_signed_in", at)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
