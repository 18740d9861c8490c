package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	Id           string         `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-"`
	Name         string         `json:"name"`
	Email        string         `gorm:"uniqueIndex" json:"email"`
	PasswordHash string         `json:"-"`
	Status       string         `json:"status"`
	Posts        []*Post        `gorm:"foreignKey:CreatorID" json:"posts,omitempty"`
}
