package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

type answerRepository struct {
	DB *gorm.DB
}

var _ domain.AnswerRepository = (*answerRepository)(nil)

func NewAnswerRepository(db *gorm.DB) *answerRepository {
	return &answerRepository{db}
}

func (m *answerRepository) FetchByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	var answers []model.Answer
	err := m.DB.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Answer, len(answers))
	for i := range answers {
		res[i] = answers[i].ToDomain()
	}
	return res, nil
}

func (m *answerRepository) GetByID(ctx context.Context, id string) (res domain.Answer, err error) {
	var answer model.Answer
	err = m.DB.WithContext(ctx).First(&answer, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = answer.ToDomain()
	return
}

func (m *answerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.Answer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (m *answerRepository) Store(ctx context.Context, a *domain.Answer) error {
	answerModel := model.NewAnswerFromDomain(a)
	result := m.DB.WithContext(ctx).Create(&answerModel)
	if result.Error != nil {
		return result.Error
	}
	a.ID = answerModel.ID
	a.CreatedAt = answerModel.CreatedAt
	a.UpdatedAt = answerModel.UpdatedAt
	return nil
}

func (m *answerRepository) Update(ctx context.Context, a *domain.Answer) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Answer{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"content":    a.Content,
			"updated_at": a.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the answer with its own votes, bookmarks and comments.
// Sibling answers and their children are untouched.
func (m *answerRepository) Delete(ctx context.Context, id string) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Answer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Delete(&model.AnswerVote{}, "answer_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.AnswerBookmark{}, "answer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AnswerComment{}, "answer_id = ?", id).Error
	})
}

func (m *answerRepository) FetchBookmarkedByUser(ctx context.Context, userID string, take, offset int) ([]domain.Answer, error) {
	var answers []model.Answer
	repository.PageVerify(&take, &offset)

	err := m.DB.WithContext(ctx).
		Joins("JOIN answer_bookmark ON answer_bookmark.answer_id = answer.id").
		Where("answer_bookmark.user_id = ?", userID).
		Order("answer.created_at DESC").
		Distinct("answer.*").
		Limit(take).
		Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Answer, len(answers))
	for i := range answers {
		res[i] = answers[i].ToDomain()
	}
	return res, nil
}
