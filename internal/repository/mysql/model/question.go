package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

type Question struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Title     string    `gorm:"type:varchar(256);not null"`
	Content   string    `gorm:"type:longtext;not null"`
	AuthorID  string    `gorm:"type:char(36);column:author_id;not null;index"`
	CreatedAt time.Time `gorm:"type:datetime;index"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Question) TableName() string {
	return "question"
}

func (m *Question) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Question) ToDomain() domain.Question {
	return domain.Question{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		Author:    domain.Author{ID: m.AuthorID},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewQuestionFromDomain(q *domain.Question) *Question {
	return &Question{
		ID:        q.ID,
		Title:     q.Title,
		Content:   q.Content,
		AuthorID:  q.AuthorID,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
