package contract

import (
	"context"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/repository/specification"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Operator, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Operator, error)
}

type SystemLogRepository interface {
	Create(ctx context.Context, entry *entity.SystemLog) error
}
