package services

import (
	"errors"

	"gorm.io/gorm"

	"challengeapi/models"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type CreateQuestionRequest struct {
	Text            string                `json:"text" binding:"required"`
	Description     string                `json:"description"`
	ResponseType    string                `json:"responseType" binding:"required,oneof=text multiple-choice multiple-text"`
	AllowCustomText bool                  `json:"allowCustomText"`
	Options         []CreateOptionRequest `json:"options"`
}

type CreateOptionRequest struct {
	OptionText string `json:"optionText" binding:"required"`
}

type UpdateQuestionRequest struct {
	Text            string                `json:"text"`
	Description     string                `json:"description"`
	ResponseType    string                `json:"responseType" binding:"omitempty,oneof=text multiple-choice multiple-text"`
	AllowCustomText *bool                 `json:"allowCustomText"`
	Options         []CreateOptionRequest `json:"options"`
}

func (s *QuestionService) CreateQuestion(req *CreateQuestionRequest) (*models.Question, error) {
	if req.ResponseType == models.ResponseTypeMultipleChoice && len(req.Options) < 2 {
		return nil, errors.New("multiple-choice questions need at least two options")
	}
	if req.ResponseType != models.ResponseTypeMultipleChoice && len(req.Options) > 0 {
		return nil, errors.New("options are only allowed for multiple-choice questions")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	question := models.Question{
		Text:            req.Text,
		Description:     req.Description,
		ResponseType:    req.ResponseType,
		AllowCustomText: req.AllowCustomText,
	}

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, optReq := range req.Options {
		option := models.Option{
			QuestionID: question.ID,
			OptionText: optReq.OptionText,
		}

		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuestionByID(question.ID)
}

func (s *QuestionService) GetQuestions() ([]models.Question, error) {
	var questions []models.Question
	err := s.db.
		Preload("Options").
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionService) GetQuestionByID(questionID string) (*models.Question, error) {
	var question models.Question
	err := s.db.
		Preload("Options").
		First(&question, "id = ?", questionID).Error
	return &question, err
}

func (s *QuestionService) UpdateQuestion(questionID string, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.Text != "" {
		question.Text = req.Text
	}
	if req.Description != "" {
		question.Description = req.Description
	}
	if req.ResponseType != "" {
		question.ResponseType = req.ResponseType
	}
	if req.AllowCustomText != nil {
		question.AllowCustomText = *req.AllowCustomText
	}

	clearOptions, replaceOptions, err := normalizeOptions(question.ResponseType, req.Options)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Save(question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if clearOptions || replaceOptions {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Option{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if replaceOptions {
		for _, optReq := range req.Options {
			option := models.Option{
				QuestionID: question.ID,
				OptionText: optReq.OptionText,
			}

			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuestionByID(question.ID)
}

// normalizeOptions decides what an update does to the stored options.
// Moving off multiple-choice clears them, otherwise stale options stay
// in the table and keep showing up on preloads. Providing a new list on
// a multiple-choice question replaces the stored set; omitting it keeps
// the set as is.
func normalizeOptions(responseType string, options []CreateOptionRequest) (clear, replace bool, err error) {
	if responseType != models.ResponseTypeMultipleChoice {
		if len(options) > 0 {
			return false, false, errors.New("options are only allowed for multiple-choice questions")
		}
		return true, false, nil
	}

	if options == nil {
		return false, false, nil
	}
	if len(options) < 2 {
		return false, false, errors.New("multiple-choice questions need at least two options")
	}
	return false, true, nil
}

func (s *QuestionService) DeleteQuestion(questionID string) error {
	if _, err := s.GetQuestionByID(questionID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ChallengeQuestion{}).Where("question_id = ?", questionID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("question is assigned to a challenge; unassign it first")
		}

		if err := tx.Where("question_id = ?", questionID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, "id = ?", questionID).Error
	})
}
