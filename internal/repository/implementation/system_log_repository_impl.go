package implementation

import (
	"context"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/model"
	"communityhub-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Create(ctx context.Context, entry *entity.SystemLog) error {
	m := &model.SystemLog{
		Id:        entry.Id,
		Action:    entry.Action,
		Actor:     entry.Actor,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}
