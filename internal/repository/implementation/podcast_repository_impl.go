package implementation

import (
	"context"
	"errors"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/mapper"
	"communityhub-be/internal/model"
	"communityhub-be/internal/repository/contract"
	"communityhub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PodcastRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewPodcastRepository(db *gorm.DB) contract.PodcastRepository {
	return &PodcastRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *PodcastRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PodcastRepositoryImpl) Create(ctx context.Context, podcast *entity.Podcast) error {
	m := r.mapper.PodcastToModel(podcast)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*podcast = *r.mapper.PodcastToEntity(m)
	return nil
}

func (r *PodcastRepositoryImpl) Update(ctx context.Context, podcast *entity.Podcast) error {
	m := r.mapper.PodcastToModel(podcast)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*podcast = *r.mapper.PodcastToEntity(m)
	return nil
}

func (r *PodcastRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Podcast{}, id).Error
}

func (r *PodcastRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Podcast, error) {
	var m model.Podcast
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PodcastToEntity(&m), nil
}

func (r *PodcastRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Podcast, error) {
	var models []*model.Podcast
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Podcast, len(models))
	for i, m := range models {
		entities[i] = r.mapper.PodcastToEntity(m)
	}
	return entities, nil
}

func (r *PodcastRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Podcast{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
