package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/coursesync/internal/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.UserRecord) error
	GetByUsername(ctx context.Context, username string) (models.UserRecord, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.UserRecord) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.UserRecord, error) {
	var user models.UserRecord
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return models.UserRecord{}, err
	}
	return user, nil
}
