package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/prompt-refiner-api/internal/models"
)

// PromptRepository resolves prompt records.
type PromptRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository constructs a prompt repository.
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Exists(ctx context.Context, id string) (bool, error) {
	var prompt models.Prompt
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", id).First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
