package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"challengeapi/models"
)

type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

type CreateChallengeRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Days        int             `json:"days" binding:"required,min=1"`
}

type UpdateChallengeRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Days        *int             `json:"days"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (s *ChallengeService) CreateChallenge(req *CreateChallengeRequest) (*models.Challenge, error) {
	challenge := models.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Days:        req.Days,
		Active:      true,
	}

	if err := s.db.Create(&challenge).Error; err != nil {
		return nil, err
	}

	return &challenge, nil
}

// GetChallenges lists challenges newest first. activeOnly restricts the
// list to the public catalog.
func (s *ChallengeService) GetChallenges(activeOnly bool) ([]models.Challenge, error) {
	var challenges []models.Challenge
	query := s.db.Order("created_at DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&challenges).Error
	return challenges, err
}

func (s *ChallengeService) GetChallengeByID(challengeID string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.First(&challenge, "id = ?", challengeID).Error
	return &challenge, err
}

func (s *ChallengeService) UpdateChallenge(challengeID string, req *UpdateChallengeRequest) (*models.Challenge, error) {
	challenge, err := s.GetChallengeByID(challengeID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		challenge.Title = req.Title
	}
	if req.Description != "" {
		challenge.Description = req.Description
	}
	if req.Price != nil {
		challenge.Price = *req.Price
	}
	if req.Days != nil && *req.Days > 0 {
		challenge.Days = *req.Days
	}

	if err := s.db.Save(challenge).Error; err != nil {
		return nil, err
	}

	return challenge, nil
}

func (s *ChallengeService) SetChallengeActive(challengeID string, active bool) (*models.Challenge, error) {
	challenge, err := s.GetChallengeByID(challengeID)
	if err != nil {
		return nil, err
	}

	challenge.Active = active
	if err := s.db.Save(challenge).Error; err != nil {
		return nil, err
	}

	return challenge, nil
}

func (s *ChallengeService) DeleteChallenge(challengeID string) error {
	if _, err := s.GetChallengeByID(challengeID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", challengeID).Delete(&models.ChallengeQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Challenge{}, "id = ?", challengeID).Error
	})
}
