package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:text;not null"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Location    string         `gorm:"type:text"`
	StartsAt    time.Time      `gorm:"not null;index"`
	EndsAt      *time.Time     ``
	Link        string         `gorm:"type:text"`
	Tags        string         `gorm:"type:text"` // comma separated
	Published   bool           `gorm:"not null;default:false;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Event) TableName() string {
	return "events"
}

type Resource struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:text;not null"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Link        string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(100);index"`
	Tags        string         `gorm:"type:text"`
	Published   bool           `gorm:"not null;default:false;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Resource) TableName() string {
	return "resources"
}

type Podcast struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:text;not null"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	AudioURL    string         `gorm:"type:text"`
	VideoURL    string         `gorm:"type:text"`
	PublishedAt *time.Time     `gorm:"index"`
	Published   bool           `gorm:"not null;default:false;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Podcast) TableName() string {
	return "podcasts"
}

type Testimonial struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Author    string         `gorm:"type:text;not null"`
	Quote     string         `gorm:"type:text;not null"`
	Role      string         `gorm:"type:text"`
	Published bool           `gorm:"not null;default:false;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
