package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/prompt-refiner-api/internal/models"
)

// UserRepository resolves user records.
type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
