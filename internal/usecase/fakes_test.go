package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mentorlink/internal/domain/entity"
	"mentorlink/pkg/errors"
)

// fakeChatRepository is a map-backed stand-in with the same replace
// semantics as the real store: upserts overwrite the whole document.
type fakeChatRepository struct {
	mu            sync.Mutex
	conversations map[string]entity.Conversation
	groupMessages []*entity.GroupMessage
	nextGroupMsg  int
	failNextWrite error
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		conversations: make(map[string]entity.Conversation),
	}
}

func copyConversation(conv entity.Conversation) *entity.Conversation {
	messages := make([]entity.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	conv.Messages = messages
	return &conv
}

func (f *fakeChatRepository) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	conv, ok := f.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return copyConversation(conv), nil
}

func (f *fakeChatRepository) UpsertConversation(ctx context.Context, conv *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNextWrite != nil {
		err := f.failNextWrite
		f.failNextWrite = nil
		return err
	}

	f.conversations[conv.ID] = *copyConversation(*conv)
	return nil
}

func (f *fakeChatRepository) ListConversationsByParticipant(ctx context.Context, actorID string) ([]*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Conversation
	for _, conv := range f.conversations {
		if conv.Participant1ID == actorID || conv.Participant2ID == actorID {
			out = append(out, copyConversation(conv))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (f *fakeChatRepository) ListGroupMessages(ctx context.Context, groupID string) ([]*entity.GroupMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entity.GroupMessage{}
	for _, msg := range f.groupMessages {
		if msg.GroupID == groupID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeChatRepository) AppendGroupMessage(ctx context.Context, msg *entity.GroupMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextGroupMsg++
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("gm-%d", f.nextGroupMsg)
	}
	copied := *msg
	f.groupMessages = append(f.groupMessages, &copied)
	return nil
}

type fakeGroupRepository struct {
	mu     sync.Mutex
	groups map[string]*entity.Group
	nextID int
}

func newFakeGroupRepository() *fakeGroupRepository {
	return &fakeGroupRepository{
		groups: make(map[string]*entity.Group),
	}
}

func copyGroup(g *entity.Group) *entity.Group {
	members := make([]string, len(g.Members))
	copy(members, g.Members)
	copied := *g
	copied.Members = members
	return &copied
}

func (f *fakeGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	if group.ID == "" {
		group.ID = fmt.Sprintf("group-%d", f.nextID)
	}
	f.groups[group.ID] = copyGroup(group)
	return nil
}

func (f *fakeGroupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	group, ok := f.groups[id]
	if !ok {
		return nil, errors.NotFound("Group", nil)
	}
	return copyGroup(group), nil
}

func (f *fakeGroupRepository) List(ctx context.Context) ([]*entity.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entity.Group{}
	for _, g := range f.groups {
		out = append(out, copyGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroupRepository) ListByMember(ctx context.Context, userID string) ([]*entity.Group, error) {
	all, _ := f.List(ctx)
	out := []*entity.Group{}
	for _, g := range all {
		if g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroupRepository) ListByCreator(ctx context.Context, userID string) ([]*entity.Group, error) {
	all, _ := f.List(ctx)
	out := []*entity.Group{}
	for _, g := range all {
		if g.CreatedBy == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroupRepository) UpdateMembers(ctx context.Context, groupID string, members []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	group, ok := f.groups[groupID]
	if !ok {
		return errors.NotFound("Group", nil)
	}
	group.Members = append([]string{}, members...)
	return nil
}

type fakeJobRepository struct {
	mu     sync.Mutex
	jobs   map[string]*entity.JobOpening
	nextID int
}

func newFakeJobRepository() *fakeJobRepository {
	return &fakeJobRepository{jobs: make(map[string]*entity.JobOpening)}
}

func (f *fakeJobRepository) Create(ctx context.Context, job *entity.JobOpening) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", f.nextID)
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepository) GetByID(ctx context.Context, id string) (*entity.JobOpening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.NotFound("Job opening", nil)
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepository) List(ctx context.Context) ([]*entity.JobOpening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entity.JobOpening{}
	for _, j := range f.jobs {
		copied := *j
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeJobRepository) ListByPoster(ctx context.Context, userID string) ([]*entity.JobOpening, error) {
	all, _ := f.List(ctx)
	out := []*entity.JobOpening{}
	for _, j := range all {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepository) Update(ctx context.Context, job *entity.JobOpening) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.jobs[job.ID]; !ok {
		return errors.NotFound("Job opening", nil)
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.jobs[id]; !ok {
		return errors.NotFound("Job opening", nil)
	}
	delete(f.jobs, id)
	return nil
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	f := &fakeUserRepository{users: make(map[string]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepository) GetByRoleAndID(ctx context.Context, role, id string) (*entity.User, error) {
	user, err := f.GetByID(ctx, id)
	if err != nil || user.Role != role {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepository) GetByUsername(ctx context.Context, role, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Role == role && u.Username == username {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entity.User{}
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepository) GetProfileSummary(ctx context.Context, kind, id string) (*entity.ProfileSummary, error) {
	user, err := f.GetByRoleAndID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &entity.ProfileSummary{ID: user.ID, Name: user.Name, AvatarURL: user.AvatarURL}, nil
}
