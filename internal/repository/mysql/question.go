package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

type questionRepository struct {
	DB *gorm.DB
}

var _ domain.QuestionRepository = (*questionRepository)(nil)

// NewQuestionRepository 创建数据库操作层
func NewQuestionRepository(db *gorm.DB) *questionRepository {
	return &questionRepository{db}
}

func (m *questionRepository) FetchNew(ctx context.Context, take, offset int) (res []domain.Question, err error) {
	var questions []model.Question
	repository.PageVerify(&take, &offset)

	err = m.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(take).
		Offset(offset).
		Find(&questions).
		Error
	if err != nil {
		return nil, err
	}

	res = make([]domain.Question, len(questions))
	for i := range questions {
		res[i] = questions[i].ToDomain()
	}
	return res, nil
}

func (m *questionRepository) GetByID(ctx context.Context, id string) (res domain.Question, err error) {
	var question model.Question
	err = m.DB.WithContext(ctx).First(&question, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = question.ToDomain()
	return
}

func (m *questionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (m *questionRepository) Store(ctx context.Context, q *domain.Question) error {
	questionModel := model.NewQuestionFromDomain(q)
	result := m.DB.WithContext(ctx).Create(&questionModel)
	if result.Error != nil {
		return result.Error
	}
	q.ID = questionModel.ID
	q.CreatedAt = questionModel.CreatedAt
	q.UpdatedAt = questionModel.UpdatedAt
	return nil
}

func (m *questionRepository) Update(ctx context.Context, q *domain.Question) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Question{}).
		Where("id = ?", q.ID).
		Updates(map[string]any{
			"title":      q.Title,
			"content":    q.Content,
			"updated_at": q.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the question and everything hanging off it: its votes,
// bookmarks, comments and answers, and the answers' own votes, bookmarks
// and comments. All in one transaction.
func (m *questionRepository) Delete(ctx context.Context, id string) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Question{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		var answerIDs []string
		if err := tx.Model(&model.Answer{}).
			Where("question_id = ?", id).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Delete(&model.AnswerVote{}, "answer_id IN ?", answerIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.AnswerBookmark{}, "answer_id IN ?", answerIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.AnswerComment{}, "answer_id IN ?", answerIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Answer{}, "id IN ?", answerIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&model.QuestionVote{}, "question_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.QuestionBookmark{}, "question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuestionComment{}, "question_id = ?", id).Error
	})
}

func (m *questionRepository) FetchBookmarkedByUser(ctx context.Context, userID string, take, offset int) ([]domain.Question, error) {
	var questions []model.Question
	repository.PageVerify(&take, &offset)

	err := m.DB.WithContext(ctx).
		Joins("JOIN question_bookmark ON question_bookmark.question_id = question.id").
		Where("question_bookmark.user_id = ?", userID).
		Order("question.created_at DESC").
		Distinct("question.*").
		Limit(take).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Question, len(questions))
	for i := range questions {
		res[i] = questions[i].ToDomain()
	}
	return res, nil
}
