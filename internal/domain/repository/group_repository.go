package repository

import (
	"context"

	"mentorlink/internal/domain/entity"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	List(ctx context.Context) ([]*entity.Group, error)
	ListByMember(ctx context.Context, userID string) ([]*entity.Group, error)
	ListByCreator(ctx context.Context, userID string) ([]*entity.Group, error)

	// UpdateMembers replaces the member array whole. Same lost-update
	// exposure as conversation upserts; accepted at this traffic scale.
	UpdateMembers(ctx context.Context, groupID string, members []string) error
}
