package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryDaily               = "daily"
	CategoryDailyReflection     = "daily-reflection"
	CategoryWeeklyReflection    = "weekly-reflection"
	CategoryChallengeReflection = "challenge-reflection"
)

// ChallengeQuestion binds a question to a day of a challenge. Week is
// redundant with day (week = ceil(day/7)); it is always recomputed from
// day on write, never taken from the client.
//
// No soft delete here: a soft-deleted row would keep its slot in the
// unique index on (challenge_id, question_id) and block re-assigning
// the question after an unassign. Deletes are real deletes.
type ChallengeQuestion struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	ChallengeID      string    `json:"challengeId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_question"`
	QuestionID       string    `json:"questionId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_question"`
	Week             int       `json:"week" gorm:"not null"`
	Day              int       `json:"day" gorm:"not null"`
	QuestionCategory string    `json:"questionCategory" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Question Question `json:"Question,omitempty" gorm:"foreignKey:QuestionID"`
}

func (cq *ChallengeQuestion) BeforeCreate(tx *gorm.DB) error {
	if cq.ID == "" {
		cq.ID = uuid.NewString()
	}
	return nil
}
