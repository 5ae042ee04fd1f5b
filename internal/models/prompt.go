package models

import (
	"time"

	"gorm.io/datatypes"
)

// Prompt is a prompt that went through refinement and can receive feedback.
type Prompt struct {
	ID             string            `gorm:"primaryKey;size:64" json:"id"`
	UserID         string            `gorm:"size:64;index" json:"user_id"`
	Content        string            `gorm:"type:text" json:"content"`
	RefinedContent string            `gorm:"type:text" json:"refined_content"`
	Metadata       datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
