package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Id          uuid.UUID
	Title       string
	Slug        string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
	Link        string
	Tags        []string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Resource struct {
	Id          uuid.UUID
	Title       string
	Slug        string
	Description string
	Link        string
	Category    string
	Tags        []string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Podcast struct {
	Id          uuid.UUID
	Title       string
	Slug        string
	Description string
	AudioURL    string
	VideoURL    string
	PublishedAt *time.Time
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Testimonial struct {
	Id        uuid.UUID
	Author    string
	Quote     string
	Role      string
	Published bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
