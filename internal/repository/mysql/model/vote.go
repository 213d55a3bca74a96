package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

// Vote rows carry a unique index on (parent, user) so concurrent casts for
// the same pair collapse into one row via ON CONFLICT upserts.

type QuestionVote struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	QuestionID string    `gorm:"type:char(36);column:question_id;not null;uniqueIndex:idx_question_vote_user"`
	UserID     string    `gorm:"type:char(36);column:user_id;not null;uniqueIndex:idx_question_vote_user"`
	Value      int8      `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (QuestionVote) TableName() string {
	return "question_vote"
}

func (m *QuestionVote) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *QuestionVote) ToDomain() domain.Vote {
	return domain.Vote{
		ID:        m.ID,
		ParentID:  m.QuestionID,
		UserID:    m.UserID,
		Value:     domain.VoteValue(m.Value),
		CreatedAt: m.CreatedAt,
	}
}

func NewQuestionVoteFromDomain(v *domain.Vote) *QuestionVote {
	return &QuestionVote{
		ID:         v.ID,
		QuestionID: v.ParentID,
		UserID:     v.UserID,
		Value:      int8(v.Value),
		CreatedAt:  v.CreatedAt,
	}
}

type AnswerVote struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	AnswerID  string    `gorm:"type:char(36);column:answer_id;not null;uniqueIndex:idx_answer_vote_user"`
	UserID    string    `gorm:"type:char(36);column:user_id;not null;uniqueIndex:idx_answer_vote_user"`
	Value     int8      `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (AnswerVote) TableName() string {
	return "answer_vote"
}

func (m *AnswerVote) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *AnswerVote) ToDomain() domain.Vote {
	return domain.Vote{
		ID:        m.ID,
		ParentID:  m.AnswerID,
		UserID:    m.UserID,
		Value:     domain.VoteValue(m.Value),
		CreatedAt: m.CreatedAt,
	}
}

func NewAnswerVoteFromDomain(v *domain.Vote) *AnswerVote {
	return &AnswerVote{
		ID:        v.ID,
		AnswerID:  v.ParentID,
		UserID:    v.UserID,
		Value:     int8(v.Value),
		CreatedAt: v.CreatedAt,
	}
}
