package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserResponse holds one answer per question per user challenge. Either
// ResponseText or SelectedOptionID is set, depending on the question's
// response type.
type UserResponse struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserChallengeID  string         `json:"userChallengeId" gorm:"type:uuid;not null;uniqueIndex:idx_response_question"`
	QuestionID       string         `json:"questionId" gorm:"type:uuid;not null;uniqueIndex:idx_response_question"`
	ResponseText     *string        `json:"responseText"`
	SelectedOptionID *string        `json:"selectedOptionId" gorm:"type:uuid"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question       Question `json:"question,omitempty"`
	SelectedOption *Option  `json:"selectedOption,omitempty" gorm:"foreignKey:SelectedOptionID"`
}

func (r *UserResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
