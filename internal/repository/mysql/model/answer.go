package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

type Answer struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	QuestionID string    `gorm:"type:char(36);column:question_id;not null;index"`
	Content    string    `gorm:"type:longtext;not null"`
	AuthorID   string    `gorm:"type:char(36);column:author_id;not null;index"`
	CreatedAt  time.Time `gorm:"type:datetime;index"`
	UpdatedAt  time.Time `gorm:"type:datetime"`
}

func (Answer) TableName() string {
	return "answer"
}

func (m *Answer) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Answer) ToDomain() domain.Answer {
	return domain.Answer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Content:    m.Content,
		AuthorID:   m.AuthorID,
		Author:     domain.Author{ID: m.AuthorID},
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewAnswerFromDomain(a *domain.Answer) *Answer {
	return &Answer{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Content:    a.Content,
		AuthorID:   a.AuthorID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
