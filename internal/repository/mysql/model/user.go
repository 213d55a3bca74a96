package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/domain"
)

type User struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserName  string    `gorm:"type:varchar(64);column:user_name;not null;uniqueIndex"`
	Email     string    `gorm:"type:varchar(256);not null;uniqueIndex"`
	Password  string    `gorm:"type:varchar(128);not null"`
	URLPhoto  *string   `gorm:"type:varchar(512);column:url_photo"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func (m *User) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		UserName:  m.UserName,
		Email:     m.Email,
		Password:  m.Password,
		URLPhoto:  m.URLPhoto,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Password:  u.Password,
		URLPhoto:  u.URLPhoto,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
