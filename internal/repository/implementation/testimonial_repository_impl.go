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

type TestimonialRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewTestimonialRepository(db *gorm.DB) contract.TestimonialRepository {
	return &TestimonialRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *TestimonialRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TestimonialRepositoryImpl) Create(ctx context.Context, testimonial *entity.Testimonial) error {
	m := r.mapper.TestimonialToModel(testimonial)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*testimonial = *r.mapper.TestimonialToEntity(m)
	return nil
}

func (r *TestimonialRepositoryImpl) Update(ctx context.Context, testimonial *entity.Testimonial) error {
	m := r.mapper.TestimonialToModel(testimonial)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*testimonial = *r.mapper.TestimonialToEntity(m)
	return nil
}

func (r *TestimonialRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Testimonial{}, id).Error
}

func (r *TestimonialRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Testimonial, error) {
	var m model.Testimonial
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TestimonialToEntity(&m), nil
}

func (r *TestimonialRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Testimonial, error) {
	var models []*model.Testimonial
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Testimonial, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TestimonialToEntity(m)
	}
	return entities, nil
}

func (r *TestimonialRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Testimonial{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
