package service

import (
	"context"
	"fmt"
	"time"

	"communityhub-be/internal/dto"
	"communityhub-be/internal/entity"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/logger"
	"communityhub-be/internal/repository/specification"
	"communityhub-be/internal/repository/unitofwork"
	"communityhub-be/pkg/chat/grounding"
	"communityhub-be/pkg/utils"

	"github.com/google/uuid"
)

type IContentService interface {
	// Public surface: published items only.
	ListEvents(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.EventResponse], error)
	GetEventBySlug(ctx context.Context, slug string) (*dto.EventResponse, error)
	ListResources(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.ResourceResponse], error)
	GetResourceBySlug(ctx context.Context, slug string) (*dto.ResourceResponse, error)
	ListPodcasts(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.PodcastResponse], error)
	GetPodcastBySlug(ctx context.Context, slug string) (*dto.PodcastResponse, error)
	ListTestimonials(ctx context.Context) ([]*dto.TestimonialResponse, error)

	// Admin surface.
	CreateEvent(ctx context.Context, req *dto.UpsertEventRequest, actor string) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpsertEventRequest, actor string) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID, actor string) error
	CreateResource(ctx context.Context, req *dto.UpsertResourceRequest, actor string) (*dto.ResourceResponse, error)
	UpdateResource(ctx context.Context, id uuid.UUID, req *dto.UpsertResourceRequest, actor string) (*dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, id uuid.UUID, actor string) error
	CreatePodcast(ctx context.Context, req *dto.UpsertPodcastRequest, actor string) (*dto.PodcastResponse, error)
	UpdatePodcast(ctx context.Context, id uuid.UUID, req *dto.UpsertPodcastRequest, actor string) (*dto.PodcastResponse, error)
	DeletePodcast(ctx context.Context, id uuid.UUID, actor string) error
	CreateTestimonial(ctx context.Context, req *dto.UpsertTestimonialRequest, actor string) (*dto.TestimonialResponse, error)
	UpdateTestimonial(ctx context.Context, id uuid.UUID, req *dto.UpsertTestimonialRequest, actor string) (*dto.TestimonialResponse, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID, actor string) error
}

type contentService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	logger     logger.ILogger

	orgName    string
	orgMission string
}

func NewContentService(
	uowFactory unitofwork.RepositoryFactory,
	audit IAuditService,
	log logger.ILogger,
	orgName string,
	orgMission string,
) IContentService {
	return &contentService{
		uowFactory: uowFactory,
		audit:      audit,
		logger:     log,
		orgName:    orgName,
		orgMission: orgMission,
	}
}

func pageBounds(query *dto.PagedQuery) (page, limit int) {
	page = query.Page
	if page < 1 {
		page = 1
	}
	limit = query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func listSpecs(query *dto.PagedQuery, page, limit int, orderField string) []specification.Specification {
	specs := []specification.Specification{specification.Published{}}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}
	if query.Search != "" {
		specs = append(specs, specification.TitleContains{Term: query.Search})
	}
	return append(specs,
		specification.OrderBy{Field: orderField, Desc: orderField != "starts_at"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
}

func countSpecs(query *dto.PagedQuery) []specification.Specification {
	specs := []specification.Specification{specification.Published{}}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}
	if query.Search != "" {
		specs = append(specs, specification.TitleContains{Term: query.Search})
	}
	return specs
}

// Events

func (s *contentService) ListEvents(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.EventResponse], error) {
	page, limit := pageBounds(query)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.EventRepository().Count(ctx, countSpecs(query)...)
	if err != nil {
		return nil, err
	}
	events, err := uow.EventRepository().FindAll(ctx, listSpecs(query, page, limit, "starts_at")...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.EventResponse, len(events))
	for i, e := range events {
		items[i] = eventToResponse(e)
	}
	return &dto.PagedResponse[*dto.EventResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *contentService) GetEventBySlug(ctx context.Context, slug string) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := uow.EventRepository().FindOne(ctx, specification.BySlug{Slug: slug}, specification.Published{})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperror.NewNotFound("event not found")
	}
	return eventToResponse(event), nil
}

func (s *contentService) CreateEvent(ctx context.Context, req *dto.UpsertEventRequest, actor string) (*dto.EventResponse, error) {
	now := time.Now()
	event := &entity.Event{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Link:        req.Link,
		Tags:        req.Tags,
		Published:   req.Published,
		CreatedAt:   now,
	}
	event.Slug = s.uniqueSlug(req.Title, event.Id)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EventRepository().Create(ctx, event); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.event.created", actor, event.Id.String())
	return eventToResponse(event), nil
}

func (s *contentService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.UpsertEventRequest, actor string) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperror.NewNotFound("event not found")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Link = req.Link
	event.Tags = req.Tags
	event.Published = req.Published

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EventRepository().Update(ctx, event); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.event.updated", actor, event.Id.String())
	return eventToResponse(event), nil
}

func (s *contentService) DeleteEvent(ctx context.Context, id uuid.UUID, actor string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.EventRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.audit.Record(ctx, "content.event.deleted", actor, id.String())
	return nil
}

// Resources

func (s *contentService) ListResources(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.ResourceResponse], error) {
	page, limit := pageBounds(query)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ResourceRepository().Count(ctx, countSpecs(query)...)
	if err != nil {
		return nil, err
	}
	resources, err := uow.ResourceRepository().FindAll(ctx, listSpecs(query, page, limit, "created_at")...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ResourceResponse, len(resources))
	for i, r := range resources {
		items[i] = resourceToResponse(r)
	}
	return &dto.PagedResponse[*dto.ResourceResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *contentService) GetResourceBySlug(ctx context.Context, slug string) (*dto.ResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx, specification.BySlug{Slug: slug}, specification.Published{})
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperror.NewNotFound("resource not found")
	}
	return resourceToResponse(resource), nil
}

func (s *contentService) CreateResource(ctx context.Context, req *dto.UpsertResourceRequest, actor string) (*dto.ResourceResponse, error) {
	resource := &entity.Resource{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
		Tags:        req.Tags,
		Published:   req.Published,
		CreatedAt:   time.Now(),
	}
	resource.Slug = s.uniqueSlug(req.Title, resource.Id)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ResourceRepository().Create(ctx, resource); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.resource.created", actor, resource.Id.String())
	return resourceToResponse(resource), nil
}

func (s *contentService) UpdateResource(ctx context.Context, id uuid.UUID, req *dto.UpsertResourceRequest, actor string) (*dto.ResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperror.NewNotFound("resource not found")
	}

	resource.Title = req.Title
	resource.Description = req.Description
	resource.Link = req.Link
	resource.Category = req.Category
	resource.Tags = req.Tags
	resource.Published = req.Published

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ResourceRepository().Update(ctx, resource); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.resource.updated", actor, resource.Id.String())
	return resourceToResponse(resource), nil
}

func (s *contentService) DeleteResource(ctx context.Context, id uuid.UUID, actor string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResourceRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.audit.Record(ctx, "content.resource.deleted", actor, id.String())
	return nil
}

// Podcasts

func (s *contentService) ListPodcasts(ctx context.Context, query *dto.PagedQuery) (*dto.PagedResponse[*dto.PodcastResponse], error) {
	page, limit := pageBounds(query)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.PodcastRepository().Count(ctx, countSpecs(query)...)
	if err != nil {
		return nil, err
	}
	podcasts, err := uow.PodcastRepository().FindAll(ctx, listSpecs(query, page, limit, "created_at")...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PodcastResponse, len(podcasts))
	for i, p := range podcasts {
		items[i] = podcastToResponse(p)
	}
	return &dto.PagedResponse[*dto.PodcastResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *contentService) GetPodcastBySlug(ctx context.Context, slug string) (*dto.PodcastResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	podcast, err := uow.PodcastRepository().FindOne(ctx, specification.BySlug{Slug: slug}, specification.Published{})
	if err != nil {
		return nil, err
	}
	if podcast == nil {
		return nil, apperror.NewNotFound("podcast not found")
	}
	return podcastToResponse(podcast), nil
}

func (s *contentService) CreatePodcast(ctx context.Context, req *dto.UpsertPodcastRequest, actor string) (*dto.PodcastResponse, error) {
	podcast := &entity.Podcast{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		AudioURL:    req.AudioURL,
		VideoURL:    req.VideoURL,
		PublishedAt: req.PublishedAt,
		Published:   req.Published,
		CreatedAt:   time.Now(),
	}
	podcast.Slug = s.uniqueSlug(req.Title, podcast.Id)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PodcastRepository().Create(ctx, podcast); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.podcast.created", actor, podcast.Id.String())
	return podcastToResponse(podcast), nil
}

func (s *contentService) UpdatePodcast(ctx context.Context, id uuid.UUID, req *dto.UpsertPodcastRequest, actor string) (*dto.PodcastResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	podcast, err := uow.PodcastRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if podcast == nil {
		return nil, apperror.NewNotFound("podcast not found")
	}

	podcast.Title = req.Title
	podcast.Description = req.Description
	podcast.AudioURL = req.AudioURL
	podcast.VideoURL = req.VideoURL
	podcast.PublishedAt = req.PublishedAt
	podcast.Published = req.Published

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PodcastRepository().Update(ctx, podcast); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.podcast.updated", actor, podcast.Id.String())
	return podcastToResponse(podcast), nil
}

func (s *contentService) DeletePodcast(ctx context.Context, id uuid.UUID, actor string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PodcastRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.audit.Record(ctx, "content.podcast.deleted", actor, id.String())
	return nil
}

// Testimonials

func (s *contentService) ListTestimonials(ctx context.Context) ([]*dto.TestimonialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	testimonials, err := uow.TestimonialRepository().FindAll(ctx,
		specification.Published{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TestimonialResponse, len(testimonials))
	for i, t := range testimonials {
		items[i] = testimonialToResponse(t)
	}
	return items, nil
}

func (s *contentService) CreateTestimonial(ctx context.Context, req *dto.UpsertTestimonialRequest, actor string) (*dto.TestimonialResponse, error) {
	testimonial := &entity.Testimonial{
		Id:        uuid.New(),
		Author:    req.Author,
		Quote:     req.Quote,
		Role:      req.Role,
		Published: req.Published,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.TestimonialRepository().Create(ctx, testimonial); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.testimonial.created", actor, testimonial.Id.String())
	return testimonialToResponse(testimonial), nil
}

func (s *contentService) UpdateTestimonial(ctx context.Context, id uuid.UUID, req *dto.UpsertTestimonialRequest, actor string) (*dto.TestimonialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	testimonial, err := uow.TestimonialRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, apperror.NewNotFound("testimonial not found")
	}

	testimonial.Author = req.Author
	testimonial.Quote = req.Quote
	testimonial.Role = req.Role
	testimonial.Published = req.Published

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.TestimonialRepository().Update(ctx, testimonial); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "content.testimonial.updated", actor, testimonial.Id.String())
	return testimonialToResponse(testimonial), nil
}

func (s *contentService) DeleteTestimonial(ctx context.Context, id uuid.UUID, actor string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TestimonialRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.audit.Record(ctx, "content.testimonial.deleted", actor, id.String())
	return nil
}

// uniqueSlug derives the slug from the title and falls back to a suffix from
// the row's id when the title alone is taken or empty. The unique index on
// slug is the real guard; the suffix just makes collisions vanishingly rare.
func (s *contentService) uniqueSlug(title string, id uuid.UUID) string {
	slug := utils.Slugify(title)
	if slug == "" {
		return id.String()
	}
	return fmt.Sprintf("%s-%s", slug, id.String()[:8])
}

// DTO projections

func eventToResponse(e *entity.Event) *dto.EventResponse {
	return &dto.EventResponse{
		Id:          e.Id,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Link:        e.Link,
		Tags:        e.Tags,
		Published:   e.Published,
		CreatedAt:   e.CreatedAt,
	}
}

func resourceToResponse(r *entity.Resource) *dto.ResourceResponse {
	return &dto.ResourceResponse{
		Id:          r.Id,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Link:        r.Link,
		Category:    r.Category,
		Tags:        r.Tags,
		Published:   r.Published,
		CreatedAt:   r.CreatedAt,
	}
}

func podcastToResponse(p *entity.Podcast) *dto.PodcastResponse {
	return &dto.PodcastResponse{
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

func testimonialToResponse(t *entity.Testimonial) *dto.TestimonialResponse {
	return &dto.TestimonialResponse{
		Id:        t.Id,
		Author:    t.Author,
		Quote:     t.Quote,
		Role:      t.Role,
		Published: t.Published,
		CreatedAt: t.CreatedAt,
	}
}

// --- grounding.ContentStore ---

// contentStoreAdapter exposes published content to the chat grounding
// assembler without giving it the full admin service.
type contentStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
	orgName    string
	orgMission string
}

func NewContentStore(uowFactory unitofwork.RepositoryFactory, orgName, orgMission string) grounding.ContentStore {
	return &contentStoreAdapter{
		uowFactory: uowFactory,
		orgName:    orgName,
		orgMission: orgMission,
	}
}

func (a *contentStoreAdapter) UpcomingEvents(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	events, err := uow.EventRepository().FindAll(ctx,
		specification.Published{},
		specification.UpcomingEvents{Now: time.Now()},
		specification.OrderBy{Field: "starts_at", Desc: false},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]grounding.ContentItem, len(events))
	for i, e := range events {
		startsAt := e.StartsAt
		items[i] = grounding.ContentItem{
			Title:       e.Title,
			Description: e.Description,
			Date:        &startsAt,
			Link:        e.Link,
		}
	}
	return items, nil
}

func (a *contentStoreAdapter) RecentResources(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	resources, err := uow.ResourceRepository().FindAll(ctx,
		specification.Published{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]grounding.ContentItem, len(resources))
	for i, r := range resources {
		items[i] = grounding.ContentItem{
			Title:       r.Title,
			Description: r.Description,
			Link:        r.Link,
		}
	}
	return items, nil
}

func (a *contentStoreAdapter) RecentPodcasts(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	podcasts, err := uow.PodcastRepository().FindAll(ctx,
		specification.Published{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]grounding.ContentItem, len(podcasts))
	for i, p := range podcasts {
		link := p.AudioURL
		if link == "" {
			link = p.VideoURL
		}
		items[i] = grounding.ContentItem{
			Title:       p.Title,
			Description: p.Description,
			Date:        p.PublishedAt,
			Link:        link,
		}
	}
	return items, nil
}

// OrganizationOverview blends the configured mission statement with a couple
// of published testimonials so the assistant can describe the organization in
// its own members' words.
func (a *contentStoreAdapter) OrganizationOverview(ctx context.Context) (string, error) {
	overview := a.orgName
	if a.orgMission != "" {
		overview += ": " + a.orgMission
	}

	uow := a.uowFactory.NewUnitOfWork(ctx)
	testimonials, err := uow.TestimonialRepository().FindAll(ctx,
		specification.Published{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 2},
	)
	if err != nil {
		// The mission text alone is still a usable overview.
		return overview, nil
	}

	for _, t := range testimonials {
		overview += fmt.Sprintf("\n%q, %s", t.Quote, t.Author)
	}
	return overview, nil
}
