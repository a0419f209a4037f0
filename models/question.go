package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResponseTypeText           = "text"
	ResponseTypeMultipleChoice = "multiple-choice"
	ResponseTypeMultipleText   = "multiple-text"
)

// Question belongs to the global question bank and can be assigned to
// any number of challenges.
type Question struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	Text            string         `json:"text" gorm:"not null"`
	Description     string         `json:"description"`
	ResponseType    string         `json:"responseType" gorm:"not null;default:'text'"` // text, multiple-choice, multiple-text
	AllowCustomText bool           `json:"allowCustomText" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Option is a selectable answer; present only for multiple-choice questions.
type Option struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionID string         `json:"question_id" gorm:"type:uuid;not null"`
	OptionText string         `json:"optionText" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
