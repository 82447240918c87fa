package contract

import (
	"context"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PodcastRepository interface {
	Create(ctx context.Context, podcast *entity.Podcast) error
	Update(ctx context.Context, podcast *entity.Podcast) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Podcast, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Podcast, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *entity.Testimonial) error
	Update(ctx context.Context, testimonial *entity.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Testimonial, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Testimonial, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
