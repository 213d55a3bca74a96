package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

type questionCommentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*questionCommentRepository)(nil)

func NewQuestionCommentRepository(db *gorm.DB) *questionCommentRepository {
	return &questionCommentRepository{
		DB: db,
	}
}

func (c *questionCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var comment model.QuestionComment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return domain.Comment{}, domain.ErrNotFound
	}
	return comment.ToDomain(), nil
}

func (c *questionCommentRepository) FetchByParent(ctx context.Context, parentID string) ([]domain.Comment, error) {
	var comments []model.QuestionComment
	err := c.DB.WithContext(ctx).
		Where("question_id = ?", parentID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *questionCommentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewQuestionCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Create(commentModel).Error
	if err != nil {
		return err
	}
	comment.ID = commentModel.ID
	return nil
}

func (c *questionCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result := c.DB.WithContext(ctx).
		Model(&model.QuestionComment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *questionCommentRepository) Delete(ctx context.Context, id string) error {
	result := c.DB.WithContext(ctx).Delete(&model.QuestionComment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type answerCommentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*answerCommentRepository)(nil)

func NewAnswerCommentRepository(db *gorm.DB) *answerCommentRepository {
	return &answerCommentRepository{
		DB: db,
	}
}

func (c *answerCommentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var comment model.AnswerComment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return domain.Comment{}, domain.ErrNotFound
	}
	return comment.ToDomain(), nil
}

func (c *answerCommentRepository) FetchByParent(ctx context.Context, parentID string) ([]domain.Comment, error) {
	var comments []model.AnswerComment
	err := c.DB.WithContext(ctx).
		Where("answer_id = ?", parentID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *answerCommentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewAnswerCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Create(commentModel).Error
	if err != nil {
		return err
	}
	comment.ID = commentModel.ID
	return nil
}

func (c *answerCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	result := c.DB.WithContext(ctx).
		Model(&model.AnswerComment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *answerCommentRepository) Delete(ctx context.Context, id string) error {
	result := c.DB.WithContext(ctx).Delete(&model.AnswerComment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
