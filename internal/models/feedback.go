package models

import "time"

// Feedback stores a user's rating of a prompt refinement. Rows are append-only.
type Feedback struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    string    `gorm:"size:64;index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PromptID  string    `gorm:"size:64;index;not null" json:"prompt_id"`
	Prompt    Prompt    `gorm:"foreignKey:PromptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the feedback table name.
func (Feedback) TableName() string {
	return "feedback"
}
