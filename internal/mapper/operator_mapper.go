package mapper

import (
	"communityhub-be/internal/entity"
	"communityhub-be/internal/model"
)

type OperatorMapper struct{}

func NewOperatorMapper() *OperatorMapper {
	return &OperatorMapper{}
}

func (m *OperatorMapper) ToEntity(o *model.Operator) *entity.Operator {
	if o == nil {
		return nil
	}
	return &entity.Operator{
		Id:           o.Id,
		Email:        o.Email,
		Name:         o.Name,
		PasswordHash: o.PasswordHash,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    updatedAtPtr(o.UpdatedAt),
	}
}

func (m *OperatorMapper) ToModel(o *entity.Operator) *model.Operator {
	if o == nil {
		return nil
	}
	return &model.Operator{
		Id:           o.Id,
		Email:        o.Email,
		Name:         o.Name,
		PasswordHash: o.PasswordHash,
		CreatedAt:    o.CreatedAt,
	}
}
