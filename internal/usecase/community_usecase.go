package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/internal/infrastructure/ratelimit"
	"mentorlink/pkg/errors"
)

type CommunityUseCase struct {
	communityRepo repository.CommunityRepository
	rateLimiter   *ratelimit.RateLimiter
}

func NewCommunityUseCase(communityRepo repository.CommunityRepository) *CommunityUseCase {
	return &CommunityUseCase{
		communityRepo: communityRepo,
		rateLimiter:   ratelimit.NewRateLimiter(),
	}
}

func (uc *CommunityUseCase) CreateCommunity(ctx context.Context, actor *entity.User, name, description string) (*entity.Community, error) {
	if actor.Role != entity.RoleGuide && actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only guides can create communities", nil)
	}
	if allowed, _ := uc.rateLimiter.Allow(actor.ID, "create_community"); !allowed {
		return nil, errors.TooManyRequests("You are creating communities too quickly")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("Community name is required", nil)
	}

	community := &entity.Community{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
	}

	if err := uc.communityRepo.Create(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

func (uc *CommunityUseCase) GetCommunity(ctx context.Context, id string) (*entity.Community, error) {
	return uc.communityRepo.GetByID(ctx, id)
}

// ListCommunities returns communities newest first, optionally filtered
// by one term over name and description.
func (uc *CommunityUseCase) ListCommunities(ctx context.Context, search string) ([]*entity.Community, error) {
	communities, err := uc.communityRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return communities, nil
	}

	term := strings.ToLower(search)
	filtered := communities[:0]
	for _, c := range communities {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (uc *CommunityUseCase) CreatePost(ctx context.Context, actor *entity.User, communityID, content string) (*entity.CommunityPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Post content is required", nil)
	}

	if _, err := uc.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}

	post := &entity.CommunityPost{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		UserID:      actor.ID,
		AuthorName:  actor.Name,
		Content:     content,
		CreatedAt:   time.Now(),
	}

	if err := uc.communityRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns a community's feed in chronological order.
func (uc *CommunityUseCase) ListPosts(ctx context.Context, communityID string) ([]*entity.CommunityPost, error) {
	if _, err := uc.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, err
	}
	return uc.communityRepo.ListPosts(ctx, communityID)
}
