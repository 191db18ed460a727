package repository

import (
	"context"

	"mentorlink/internal/domain/entity"
)

type CommunityRepository interface {
	Create(ctx context.Context, community *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	List(ctx context.Context) ([]*entity.Community, error)

	CreatePost(ctx context.Context, post *entity.CommunityPost) error
	ListPosts(ctx context.Context, communityID string) ([]*entity.CommunityPost, error)
}
