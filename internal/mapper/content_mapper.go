package mapper

import (
	"strings"
	"time"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/model"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func updatedAtPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Event

func (m *ContentMapper) EventToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}
	return &entity.Event{
		Id:          e.Id,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Link:        e.Link,
		Tags:        splitTags(e.Tags),
		Published:   e.Published,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAtPtr(e.UpdatedAt),
	}
}

func (m *ContentMapper) EventToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}
	return &model.Event{
		Id:          e.Id,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Link:        e.Link,
		Tags:        joinTags(e.Tags),
		Published:   e.Published,
		CreatedAt:   e.CreatedAt,
	}
}

// Resource

func (m *ContentMapper) ResourceToEntity(r *model.Resource) *entity.Resource {
	if r == nil {
		return nil
	}
	return &entity.Resource{
		Id:          r.Id,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Link:        r.Link,
		Category:    r.Category,
		Tags:        splitTags(r.Tags),
		Published:   r.Published,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAtPtr(r.UpdatedAt),
	}
}

func (m *ContentMapper) ResourceToModel(r *entity.Resource) *model.Resource {
	if r == nil {
		return nil
	}
	return &model.Resource{
		Id:          r.Id,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Link:        r.Link,
		Category:    r.Category,
		Tags:        joinTags(r.Tags),
		Published:   r.Published,
		CreatedAt:   r.CreatedAt,
	}
}

// Podcast

func (m *ContentMapper) PodcastToEntity(p *model.Podcast) *entity.Podcast {
	if p == nil {
		return nil
	}
	return &entity.Podcast{
		Id:          p.Id,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		AudioURL:    p.AudioURL,
		VideoURL:    p.VideoURL,
		PublishedAt: p.PublishedAt,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAtPtr(p.UpdatedAt),
	}
}

func (m *ContentMapper) PodcastToModel(p *entity.Podcast) *model.Podcast {
	if p == nil {
		return nil
	}
	return &model.Podcast{
		Id:          p.Id,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		AudioURL:    p.AudioURL,
		VideoURL:    p.VideoURL,
		PublishedAt: p.PublishedAt,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
	}
}

// Testimonial

func (m *ContentMapper) TestimonialToEntity(t *model.Testimonial) *entity.Testimonial {
	if t == nil {
		return nil
	}
	return &entity.Testimonial{
		Id:        t.Id,
		Author:    t.Author,
		Quote:     t.Quote,
		Role:      t.Role,
		Published: t.Published,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAtPtr(t.UpdatedAt),
	}
}

func (m *ContentMapper) TestimonialToModel(t *entity.Testimonial) *model.Testimonial {
	if t == nil {
		return nil
	}
	return &model.Testimonial{
		Id:        t.Id,
		Author:    t.Author,
		Quote:     t.Quote,
		Role:      t.Role,
		Published: t.Published,
		CreatedAt: t.CreatedAt,
	}
}
