package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
)

// questionVoteRepository and answerVoteRepository are the two VoteRepository
// variants. The unique (parent, user) index plus the ON CONFLICT upsert keeps
// the one-row-per-pair invariant even under concurrent casts.

type questionVoteRepository struct {
	DB *gorm.DB
}

var _ domain.VoteRepository = (*questionVoteRepository)(nil)

func NewQuestionVoteRepository(db *gorm.DB) *questionVoteRepository {
	return &questionVoteRepository{db}
}

func (m *questionVoteRepository) CountUpvotes(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.QuestionVote{}).
		Where("question_id = ? AND value = ?", parentID, int8(domain.VoteUpvote)).
		Count(&count).Error
	return count, err
}

func (m *questionVoteRepository) CountUpvotesByParents(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	if len(parentIDs) == 0 {
		return map[string]int64{}, nil
	}
	var rows []struct {
		QuestionID string
		Count      int64
	}
	err := m.DB.WithContext(ctx).
		Model(&model.QuestionVote{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ? AND value = ?", parentIDs, int8(domain.VoteUpvote)).
		Group("question_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.QuestionID] = row.Count
	}
	return res, nil
}

func (m *questionVoteRepository) GetByParentAndUser(ctx context.Context, parentID, userID string) (domain.VoteValue, error) {
	var vote model.QuestionVote
	err := m.DB.WithContext(ctx).
		First(&vote, "question_id = ? AND user_id = ?", parentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VoteNeutral, nil
		}
		return domain.VoteNeutral, err
	}
	return domain.VoteValue(vote.Value), nil
}

func (m *questionVoteRepository) GetByParentsAndUser(ctx context.Context, parentIDs []string, userID string) (map[string]domain.VoteValue, error) {
	if len(parentIDs) == 0 {
		return map[string]domain.VoteValue{}, nil
	}
	var votes []model.QuestionVote
	err := m.DB.WithContext(ctx).
		Where("question_id IN ? AND user_id = ?", parentIDs, userID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]domain.VoteValue, len(votes))
	for i := range votes {
		res[votes[i].QuestionID] = domain.VoteValue(votes[i].Value)
	}
	return res, nil
}

func (m *questionVoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	voteModel := model.NewQuestionVoteFromDomain(v)
	return m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(voteModel).Error
}

type answerVoteRepository struct {
	DB *gorm.DB
}

var _ domain.VoteRepository = (*answerVoteRepository)(nil)

func NewAnswerVoteRepository(db *gorm.DB) *answerVoteRepository {
	return &answerVoteRepository{db}
}

func (m *answerVoteRepository) CountUpvotes(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.AnswerVote{}).
		Where("answer_id = ? AND value = ?", parentID, int8(domain.VoteUpvote)).
		Count(&count).Error
	return count, err
}

func (m *answerVoteRepository) CountUpvotesByParents(ctx context.Context, parentIDs []string) (map[string]int64, error) {
	if len(parentIDs) == 0 {
		return map[string]int64{}, nil
	}
	var rows []struct {
		AnswerID string
		Count    int64
	}
	err := m.DB.WithContext(ctx).
		Model(&model.AnswerVote{}).
		Select("answer_id, COUNT(*) as count").
		Where("answer_id IN ? AND value = ?", parentIDs, int8(domain.VoteUpvote)).
		Group("answer_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.AnswerID] = row.Count
	}
	return res, nil
}

func (m *answerVoteRepository) GetByParentAndUser(ctx context.Context, parentID, userID string) (domain.VoteValue, error) {
	var vote model.AnswerVote
	err := m.DB.WithContext(ctx).
		First(&vote, "answer_id = ? AND user_id = ?", parentID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VoteNeutral, nil
		}
		return domain.VoteNeutral, err
	}
	return domain.VoteValue(vote.Value), nil
}

func (m *answerVoteRepository) GetByParentsAndUser(ctx context.Context, parentIDs []string, userID string) (map[string]domain.VoteValue, error) {
	if len(parentIDs) == 0 {
		return map[string]domain.VoteValue{}, nil
	}
	var votes []model.AnswerVote
	err := m.DB.WithContext(ctx).
		Where("answer_id IN ? AND user_id = ?", parentIDs, userID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	res := make(map[string]domain.VoteValue, len(votes))
	for i := range votes {
		res[votes[i].AnswerID] = domain.VoteValue(votes[i].Value)
	}
	return res, nil
}

func (m *answerVoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	voteModel := model.NewAnswerVoteFromDomain(v)
	return m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "answer_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(voteModel).Error
}
