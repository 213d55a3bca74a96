package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

// Bookmark repositories insert unconditionally and delete one row per call;
// duplicates for the same (parent, user) pair are legal.

type questionBookmarkRepository struct {
	DB *gorm.DB
}

var _ domain.BookmarkRepository = (*questionBookmarkRepository)(nil)

func NewQuestionBookmarkRepository(db *gorm.DB) *questionBookmarkRepository {
	return &questionBookmarkRepository{db}
}

func (m *questionBookmarkRepository) Store(ctx context.Context, b *domain.Bookmark) error {
	bookmarkModel := model.NewQuestionBookmarkFromDomain(b)
	result := m.DB.WithContext(ctx).Create(bookmarkModel)
	if result.Error != nil {
		return result.Error
	}
	b.ID = bookmarkModel.ID
	b.CreatedAt = bookmarkModel.CreatedAt
	return nil
}

func (m *questionBookmarkRepository) DeleteOne(ctx context.Context, parentID, userID string) error {
	var bookmark model.QuestionBookmark
	err := m.DB.WithContext(ctx).
		First(&bookmark, "question_id = ? AND user_id = ?", parentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return m.DB.WithContext(ctx).Delete(&model.QuestionBookmark{}, "id = ?", bookmark.ID).Error
}

func (m *questionBookmarkRepository) Exists(ctx context.Context, parentID, userID string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.QuestionBookmark{}).
		Where("question_id = ? AND user_id = ?", parentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (m *questionBookmarkRepository) ExistsByParents(ctx context.Context, parentIDs []string, userID string) (map[string]bool, error) {
	if len(parentIDs) == 0 {
		return map[string]bool{}, nil
	}
	var ids []string
	err := m.DB.WithContext(ctx).
		Model(&model.QuestionBookmark{}).
		Where("question_id IN ? AND user_id = ?", parentIDs, userID).
		Distinct().
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]bool, len(ids))
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}

type answerBookmarkRepository struct {
	DB *gorm.DB
}

var _ domain.BookmarkRepository = (*answerBookmarkRepository)(nil)

func NewAnswerBookmarkRepository(db *gorm.DB) *answerBookmarkRepository {
	return &answerBookmarkRepository{db}
}

func (m *answerBookmarkRepository) Store(ctx context.Context, b *domain.Bookmark) error {
	bookmarkModel := model.NewAnswerBookmarkFromDomain(b)
	result := m.DB.WithContext(ctx).Create(bookmarkModel)
	if result.Error != nil {
		return result.Error
	}
	b.ID = bookmarkModel.ID
	b.CreatedAt = bookmarkModel.CreatedAt
	return nil
}

func (m *answerBookmarkRepository) DeleteOne(ctx context.Context, parentID, userID string) error {
	var bookmark model.AnswerBookmark
	err := m.DB.WithContext(ctx).
		First(&bookmark, "answer_id = ? AND user_id = ?", parentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return m.DB.WithContext(ctx).Delete(&model.AnswerBookmark{}, "id = ?", bookmark.ID).Error
}

func (m *answerBookmarkRepository) Exists(ctx context.Context, parentID, userID string) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.AnswerBookmark{}).
		Where("answer_id = ? AND user_id = ?", parentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (m *answerBookmarkRepository) ExistsByParents(ctx context.Context, parentIDs []string, userID string) (map[string]bool, error) {
	if len(parentIDs) == 0 {
		return map[string]bool{}, nil
	}
	var ids []string
	err := m.DB.WithContext(ctx).
		Model(&model.AnswerBookmark{}).
		Where("answer_id IN ? AND user_id = ?", parentIDs, userID).
		Distinct().
		Pluck("answer_id", &ids).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]bool, len(ids))
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}
