package usecase

import (
	"context"
	"strings"
	"time"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/internal/infrastructure/ratelimit"
	"mentorlink/pkg/errors"
)

type GroupUseCase struct {
	groupRepo   repository.GroupRepository
	chatRepo    repository.ChatRepository
	rateLimiter *ratelimit.RateLimiter
}

func NewGroupUseCase(groupRepo repository.GroupRepository, chatRepo repository.ChatRepository) *GroupUseCase {
	return &GroupUseCase{
		groupRepo:   groupRepo,
		chatRepo:    chatRepo,
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

type CreateGroupInput struct {
	Name        string
	Description string
	IconURL     string
}

// GroupDirectory is the groups page: the actor's own creations, the
// groups they belong to, and the rest they could join.
type GroupDirectory struct {
	Created   []*entity.Group `json:"created"`
	Enrolled  []*entity.Group `json:"enrolled"`
	Available []*entity.Group `json:"available"`
}

func (uc *GroupUseCase) CreateGroup(ctx context.Context, actor *entity.User, input CreateGroupInput) (*entity.Group, error) {
	if actor.Role != entity.RoleGuide && actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only guides can create groups", nil)
	}
	if allowed, _ := uc.rateLimiter.Allow(actor.ID, "create_group"); !allowed {
		return nil, errors.TooManyRequests("Too many groups created, try again later")
	}

	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, errors.BadRequest("Group name and description are required", nil)
	}

	group := &entity.Group{
		Name:        name,
		Description: description,
		IconURL:     input.IconURL,
		CreatedBy:   actor.ID,
		Members:     []string{actor.ID},
		CreatedAt:   time.Now(),
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// JoinGroup appends the actor to the member array and writes it back
// whole. Membership only grows; there is no leave. Two simultaneous
// joins replaying the same base array can drop one of them, the same
// accepted race as conversation appends.
func (uc *GroupUseCase) JoinGroup(ctx context.Context, actor *entity.User, groupID string) (*entity.Group, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.HasMember(actor.ID) {
		return group, nil
	}

	group.Members = append(group.Members, actor.ID)
	if err := uc.groupRepo.UpdateMembers(ctx, groupID, group.Members); err != nil {
		return nil, err
	}
	return group, nil
}

func (uc *GroupUseCase) GetGroup(ctx context.Context, groupID string) (*entity.Group, error) {
	return uc.groupRepo.GetByID(ctx, groupID)
}

// ListGroups categorizes every group relative to the actor and filters
// all three buckets by one case-insensitive term over name and
// description.
func (uc *GroupUseCase) ListGroups(ctx context.Context, actor *entity.User, search string) (*GroupDirectory, error) {
	groups, err := uc.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(search)
	dir := &GroupDirectory{
		Created:   []*entity.Group{},
		Enrolled:  []*entity.Group{},
		Available: []*entity.Group{},
	}

	for _, group := range groups {
		if term != "" &&
			!strings.Contains(strings.ToLower(group.Name), term) &&
			!strings.Contains(strings.ToLower(group.Description), term) {
			continue
		}

		switch {
		case group.CreatedBy == actor.ID:
			dir.Created = append(dir.Created, group)
		case group.HasMember(actor.ID):
			dir.Enrolled = append(dir.Enrolled, group)
		default:
			dir.Available = append(dir.Available, group)
		}
	}

	return dir, nil
}

// SendGroupMessage inserts one row into the group's append-only stream.
// No read-modify-write here, so concurrent senders both land.
func (uc *GroupUseCase) SendGroupMessage(ctx context.Context, actor *entity.User, groupID, body string) (*entity.GroupMessage, error) {
	if allowed, _ := uc.rateLimiter.Allow(actor.ID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.BadRequest("Message body is empty", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor.ID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	msg := &entity.GroupMessage{
		GroupID:    groupID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		Body:       body,
		CreatedAt:  time.Now(),
	}

	if err := uc.chatRepo.AppendGroupMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// FetchGroupMessages returns the stream ascending by creation time.
func (uc *GroupUseCase) FetchGroupMessages(ctx context.Context, actor *entity.User, groupID string) ([]*entity.GroupMessage, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor.ID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	return uc.chatRepo.ListGroupMessages(ctx, groupID)
}
