package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

// Bookmarks carry no uniqueness constraint: the same (parent, user) pair may
// accumulate several rows and removal deletes one row at a time.

type QuestionBookmark struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	QuestionID string    `gorm:"type:char(36);column:question_id;not null;index"`
	UserID     string    `gorm:"type:char(36);column:user_id;not null;index"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (QuestionBookmark) TableName() string {
	return "question_bookmark"
}

func (m *QuestionBookmark) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *QuestionBookmark) ToDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:        m.ID,
		ParentID:  m.QuestionID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func NewQuestionBookmarkFromDomain(b *domain.Bookmark) *QuestionBookmark {
	return &QuestionBookmark{
		ID:         b.ID,
		QuestionID: b.ParentID,
		UserID:     b.UserID,
		CreatedAt:  b.CreatedAt,
	}
}

type AnswerBookmark struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	AnswerID  string    `gorm:"type:char(36);column:answer_id;not null;index"`
	UserID    string    `gorm:"type:char(36);column:user_id;not null;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (AnswerBookmark) TableName() string {
	return "answer_bookmark"
}

func (m *AnswerBookmark) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *AnswerBookmark) ToDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:        m.ID,
		ParentID:  m.AnswerID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func NewAnswerBookmarkFromDomain(b *domain.Bookmark) *AnswerBookmark {
	return &AnswerBookmark{
		ID:        b.ID,
		AnswerID:  b.ParentID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	}
}
