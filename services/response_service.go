package services

import (
	"errors"

	"gorm.io/gorm"

	"challengeapi/models"
)

type ResponseService struct {
	db *gorm.DB
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

type StartChallengeRequest struct {
	ChallengeID string `json:"challengeId" binding:"required"`
}

type SubmitResponseRequest struct {
	QuestionID       string  `json:"questionId" binding:"required"`
	ResponseText     *string `json:"responseText"`
	SelectedOptionID *string `json:"selectedOptionId"`
}

// QuestionResponse merges one assigned question with the user's answer,
// if any. Answer is the display value: the response text, or the chosen
// option's text.
type QuestionResponse struct {
	QuestionID       string          `json:"questionId"`
	Day              int             `json:"day"`
	Week             int             `json:"week"`
	QuestionCategory string          `json:"questionCategory"`
	Question         models.Question `json:"question"`
	Answer           *string         `json:"answer"`
	SelectedOptionID *string         `json:"selectedOptionId,omitempty"`
}

var (
	ErrNotYourChallenge    = errors.New("challenge does not belong to this user")
	ErrQuestionNotAssigned = errors.New("question is not assigned to this challenge")
)

// StartChallenge enrolls a user in an active challenge.
func (s *ResponseService) StartChallenge(userID string, req *StartChallengeRequest) (*models.UserChallenge, error) {
	var challenge models.Challenge
	if err := s.db.First(&challenge, "id = ? AND active = ?", req.ChallengeID, true).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.UserChallenge{}).
		Where("user_id = ? AND challenge_id = ?", userID, req.ChallengeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("challenge already selected")
	}

	userChallenge := models.UserChallenge{
		UserID:      userID,
		ChallengeID: req.ChallengeID,
		Status:      models.StatusNotStarted,
	}

	if err := s.db.Create(&userChallenge).Error; err != nil {
		return nil, err
	}

	userChallenge.Challenge = challenge
	return &userChallenge, nil
}

func (s *ResponseService) GetUserChallenges(userID string) ([]models.UserChallenge, error) {
	var userChallenges []models.UserChallenge
	err := s.db.Where("user_id = ?", userID).
		Preload("Challenge").
		Order("created_at DESC").
		Find(&userChallenges).Error
	return userChallenges, err
}

// GetResponses returns the assigned questions of the user's challenge
// merged with the answers given so far, ordered by day.
func (s *ResponseService) GetResponses(userID, userChallengeID string) ([]QuestionResponse, error) {
	userChallenge, err := s.getOwnedUserChallenge(userID, userChallengeID)
	if err != nil {
		return nil, err
	}

	var assignments []models.ChallengeQuestion
	if err := s.db.Where("challenge_id = ?", userChallenge.ChallengeID).
		Preload("Question.Options").
		Order("day").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	var responses []models.UserResponse
	if err := s.db.Where("user_challenge_id = ?", userChallengeID).
		Preload("SelectedOption").
		Find(&responses).Error; err != nil {
		return nil, err
	}

	byQuestion := make(map[string]models.UserResponse, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}

	result := make([]QuestionResponse, 0, len(assignments))
	for _, cq := range assignments {
		qr := QuestionResponse{
			QuestionID:       cq.QuestionID,
			Day:              cq.Day,
			Week:             cq.Week,
			QuestionCategory: cq.QuestionCategory,
			Question:         cq.Question,
		}

		if r, ok := byQuestion[cq.QuestionID]; ok {
			qr.SelectedOptionID = r.SelectedOptionID
			if r.ResponseText != nil {
				qr.Answer = r.ResponseText
			} else if r.SelectedOption != nil {
				text := r.SelectedOption.OptionText
				qr.Answer = &text
			}
		}

		result = append(result, qr)
	}

	return result, nil
}

// SubmitResponse records one answer and advances the user challenge
// status: the first answer moves it to in-progress, answering every
// assigned question completes it. Re-submitting overwrites the earlier
// answer (last write wins).
func (s *ResponseService) SubmitResponse(userID, userChallengeID string, req *SubmitResponseRequest) (*models.UserResponse, error) {
	userChallenge, err := s.getOwnedUserChallenge(userID, userChallengeID)
	if err != nil {
		return nil, err
	}

	var assignment models.ChallengeQuestion
	if err := s.db.Where("challenge_id = ? AND question_id = ?", userChallenge.ChallengeID, req.QuestionID).
		Preload("Question.Options").
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotAssigned
		}
		return nil, err
	}

	if err := validateResponse(&assignment.Question, req); err != nil {
		return nil, err
	}

	var response models.UserResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_challenge_id = ? AND question_id = ?", userChallengeID, req.QuestionID).
			First(&response)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		response.UserChallengeID = userChallengeID
		response.QuestionID = req.QuestionID
		response.ResponseText = req.ResponseText
		response.SelectedOptionID = req.SelectedOptionID

		if err := tx.Save(&response).Error; err != nil {
			return err
		}

		return s.advanceStatus(tx, userChallenge)
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

func (s *ResponseService) getOwnedUserChallenge(userID, userChallengeID string) (*models.UserChallenge, error) {
	var userChallenge models.UserChallenge
	if err := s.db.First(&userChallenge, "id = ?", userChallengeID).Error; err != nil {
		return nil, err
	}
	if userChallenge.UserID != userID {
		return nil, ErrNotYourChallenge
	}
	return &userChallenge, nil
}

func validateResponse(question *models.Question, req *SubmitResponseRequest) error {
	hasText := req.ResponseText != nil && *req.ResponseText != ""

	if question.ResponseType == models.ResponseTypeMultipleChoice {
		if req.SelectedOptionID != nil {
			for _, opt := range question.Options {
				if opt.ID == *req.SelectedOptionID {
					return nil
				}
			}
			return errors.New("selected option does not belong to this question")
		}
		if question.AllowCustomText && hasText {
			return nil
		}
		return errors.New("select one of the options")
	}

	if req.SelectedOptionID != nil {
		return errors.New("this question takes a text answer")
	}
	if !hasText {
		return errors.New("answer must not be empty")
	}
	return nil
}

func (s *ResponseService) advanceStatus(tx *gorm.DB, userChallenge *models.UserChallenge) error {
	var answered, assigned int64
	if err := tx.Model(&models.UserResponse{}).
		Where("user_challenge_id = ?", userChallenge.ID).
		Count(&answered).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ChallengeQuestion{}).
		Where("challenge_id = ?", userChallenge.ChallengeID).
		Count(&assigned).Error; err != nil {
		return err
	}

	status := models.StatusNotStarted
	if answered > 0 {
		status = models.StatusInProgress
	}
	if assigned > 0 && answered >= assigned {
		status = models.StatusCompleted
	}

	if status == userChallenge.Status {
		return nil
	}

	userChallenge.Status = status
	return tx.Save(userChallenge).Error
}
