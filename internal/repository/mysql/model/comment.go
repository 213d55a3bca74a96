package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

// QuestionComment and AnswerComment are separate tables with the same shape;
// both map onto domain.Comment with ParentID pointing at their own parent.

type QuestionComment struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	QuestionID string    `gorm:"type:char(36);column:question_id;not null;index"`
	AuthorID   string    `gorm:"type:char(36);column:author_id;not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt  time.Time `gorm:"type:datetime"`
}

func (QuestionComment) TableName() string {
	return "question_comment"
}

func (m *QuestionComment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *QuestionComment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		ParentID:  m.QuestionID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewQuestionCommentFromDomain(c *domain.Comment) *QuestionComment {
	return &QuestionComment{
		ID:         c.ID,
		QuestionID: c.ParentID,
		AuthorID:   c.AuthorID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type AnswerComment struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	AnswerID  string    `gorm:"type:char(36);column:answer_id;not null;index"`
	AuthorID  string    `gorm:"type:char(36);column:author_id;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (AnswerComment) TableName() string {
	return "answer_comment"
}

func (m *AnswerComment) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *AnswerComment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		ParentID:  m.AnswerID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewAnswerCommentFromDomain(c *domain.Comment) *AnswerComment {
	return &AnswerComment{
		ID:        c.ID,
		AnswerID:  c.ParentID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
