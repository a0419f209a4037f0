package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

type UserChallenge struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      string         `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_challenge"`
	ChallengeID string         `json:"challengeId" gorm:"type:uuid;not null;uniqueIndex:idx_user_challenge"`
	Status      string         `json:"status" gorm:"not null;default:'not-started'"` // not-started, in-progress, completed
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Challenge Challenge      `json:"challenge,omitempty"`
	Responses []UserResponse `json:"responses,omitempty" gorm:"foreignKey:UserChallengeID"`
}

func (uc *UserChallenge) BeforeCreate(tx *gorm.DB) error {
	if uc.ID == "" {
		uc.ID = uuid.NewString()
	}
	return nil
}
