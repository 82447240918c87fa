package dto

import (
	"time"

	"github.com/google/uuid"
)

// Events

type EventResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Link        string     `json:"link,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UpsertEventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Link        string     `json:"link"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
}

// Resources

type ResourceResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpsertResourceRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Link        string   `json:"link" validate:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// Podcasts

type PodcastResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	AudioURL    string     `json:"audio_url,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UpsertPodcastRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	AudioURL    string     `json:"audio_url"`
	VideoURL    string     `json:"video_url"`
	PublishedAt *time.Time `json:"published_at"`
	Published   bool       `json:"published"`
}

// Testimonials

type TestimonialResponse struct {
	Id        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Role      string    `json:"role,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

type UpsertTestimonialRequest struct {
	Author    string `json:"author" validate:"required"`
	Quote     string `json:"quote" validate:"required"`
	Role      string `json:"role"`
	Published bool   `json:"published"`
}

// Shared listing envelope

type PagedQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Category string `query:"category"`
	Search   string `query:"search"`
}

type PagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
