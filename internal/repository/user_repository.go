package repository

import (
	"github.com/ergo-app/ergo-server/internal/database"
	"github.com/ergo-app/ergo-server/internal/models"
	"github.com/ergo-app/ergo-server/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user profile
func (r *GormUserRepository) Create(user *models.UserProfile) error {
	return r.db.Create(user).Error
}

// FindByID finds a user profile by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user profile by email
func (r *GormUserRepository) FindByEmail(email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user profile by username
func (r *GormUserRepository) FindByUsername(username string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search finds profiles whose email or username contains term, excluding the
// requesting user. LOWER(...) LIKE keeps the match case-insensitive on every
// supported driver.
func (r *GormUserRepository) Search(term string, excludeID uuid.UUID, params utils.PaginationParams) ([]models.UserProfile, int64, error) {
	pattern := "%" + term + "%"
	query := r.db.Model(&models.UserProfile{}).
		Where("LOWER(email) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?)", pattern, pattern).
		Where("id <> ?", excludeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.UserProfile
	if err := query.Order("username ASC").Scopes(database.Paginate(params)).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
