package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"challengeapi/models"
)

type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

type AssignQuestionsRequest struct {
	ChallengeID string           `json:"challengeId" binding:"required"`
	Questions   []AssignmentItem `json:"questions" binding:"required,min=1"`
}

// AssignmentItem carries one proposed binding. Week is accepted for
// wire compatibility with older clients but ignored; the server derives
// it from Day.
type AssignmentItem struct {
	QuestionID       string `json:"questionId" binding:"required"`
	Day              int    `json:"day"`
	Week             int    `json:"week"`
	QuestionCategory string `json:"questionCategory"`
}

type UpdateAssignmentRequest struct {
	Day              int    `json:"day"`
	QuestionCategory string `json:"questionCategory"`
}

// GetChallengeWithQuestions loads a challenge with its assignment set,
// each assignment carrying its question, ordered by day.
func (s *AssignmentService) GetChallengeWithQuestions(challengeID string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.
		Preload("ChallengeQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("challenge_questions.day")
		}).
		Preload("ChallengeQuestions.Question.Options").
		First(&challenge, "id = ?", challengeID).Error
	return &challenge, err
}

// AssignQuestions validates the whole batch against the stored set and
// commits it in one transaction. Each item is also validated against
// the earlier items of the same batch, so a batch cannot sneak past a
// quota that a sequence of single requests would hit. Any failing item
// aborts the whole batch.
func (s *AssignmentService) AssignQuestions(req *AssignQuestionsRequest) ([]models.ChallengeQuestion, error) {
	challenge, err := s.GetChallengeWithQuestions(req.ChallengeID)
	if err != nil {
		return nil, err
	}

	existing := challenge.ChallengeQuestions
	assigned := make(map[string]bool, len(existing))
	for _, cq := range existing {
		assigned[cq.QuestionID] = true
	}

	created := make([]models.ChallengeQuestion, 0, len(req.Questions))
	for _, item := range req.Questions {
		if assigned[item.QuestionID] {
			return nil, fmt.Errorf("question %s is already assigned to this challenge", item.QuestionID)
		}

		proposed := ProposedAssignment{
			QuestionID: item.QuestionID,
			Day:        item.Day,
			Category:   item.QuestionCategory,
		}
		if err := ValidateAssignment(existing, proposed, challenge, ""); err != nil {
			return nil, fmt.Errorf("question %s: %w", item.QuestionID, err)
		}

		cq := models.ChallengeQuestion{
			ChallengeID:      challenge.ID,
			QuestionID:       item.QuestionID,
			Day:              item.Day,
			Week:             WeekForDay(item.Day),
			QuestionCategory: item.QuestionCategory,
		}
		existing = append(existing, cq)
		assigned[item.QuestionID] = true
		created = append(created, cq)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range created {
			if err := tx.Create(&created[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateAssignment re-validates a day/category change, excluding the
// edited row from the duplicate and quota checks.
func (s *AssignmentService) UpdateAssignment(challengeID, questionID string, req *UpdateAssignmentRequest) (*models.ChallengeQuestion, error) {
	challenge, err := s.GetChallengeWithQuestions(challengeID)
	if err != nil {
		return nil, err
	}

	var target *models.ChallengeQuestion
	for i := range challenge.ChallengeQuestions {
		if challenge.ChallengeQuestions[i].QuestionID == questionID {
			target = &challenge.ChallengeQuestions[i]
			break
		}
	}
	if target == nil {
		return nil, gorm.ErrRecordNotFound
	}

	proposed := ProposedAssignment{
		QuestionID: questionID,
		Day:        req.Day,
		Category:   req.QuestionCategory,
	}
	if err := ValidateAssignment(challenge.ChallengeQuestions, proposed, challenge, questionID); err != nil {
		return nil, err
	}

	target.Day = req.Day
	target.Week = WeekForDay(req.Day)
	target.QuestionCategory = req.QuestionCategory

	if err := s.db.Save(target).Error; err != nil {
		return nil, err
	}

	return target, nil
}

func (s *AssignmentService) DeleteAssignment(challengeID, questionID string) error {
	result := s.db.
		Where("challenge_id = ? AND question_id = ?", challengeID, questionID).
		Delete(&models.ChallengeQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetAvailableDays lists the days still open for the given category.
func (s *AssignmentService) GetAvailableDays(challengeID, category string) ([]int, error) {
	challenge, err := s.GetChallengeWithQuestions(challengeID)
	if err != nil {
		return nil, err
	}

	if _, known := CategoryLimits(challenge.Days)[category]; !known {
		return nil, errors.New("unknown question category")
	}

	return AvailableDays(category, challenge, challenge.ChallengeQuestions), nil
}
