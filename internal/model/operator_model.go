package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Operator struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string         `gorm:"type:text;not null"`
	PasswordHash string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Operator) TableName() string {
	return "operators"
}
