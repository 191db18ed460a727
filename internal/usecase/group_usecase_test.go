package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink/internal/domain/entity"
	"mentorlink/pkg/errors"
)

func groupFixture() (*GroupUseCase, *fakeGroupRepository, *fakeChatRepository, *entity.User, *entity.User) {
	guide := &entity.User{ID: "g1", Username: "bob", Name: "Bob", Role: entity.RoleGuide, Status: "active"}
	learner := &entity.User{ID: "l1", Username: "alice", Name: "Alice", Role: entity.RoleLearner, Status: "active"}

	groupRepo := newFakeGroupRepository()
	chatRepo := newFakeChatRepository()
	uc := NewGroupUseCase(groupRepo, chatRepo)
	return uc, groupRepo, chatRepo, guide, learner
}

func TestCreateGroupRequiresGuide(t *testing.T) {
	uc, _, _, _, learner := groupFixture()

	_, err := uc.CreateGroup(context.Background(), learner, CreateGroupInput{
		Name: "Circle", Description: "desc",
	})
	assert.True(t, errors.IsForbidden(err))
}

func TestCreateGroupMakesCreatorMember(t *testing.T) {
	uc, _, _, guide, _ := groupFixture()

	group, err := uc.CreateGroup(context.Background(), guide, CreateGroupInput{
		Name: "Circle", Description: "weekly sessions",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, group.ID)
	assert.Equal(t, guide.ID, group.CreatedBy)
	assert.True(t, group.HasMember(guide.ID))
}

func TestCreateGroupRejectsBlankFields(t *testing.T) {
	uc, _, _, guide, _ := groupFixture()

	_, err := uc.CreateGroup(context.Background(), guide, CreateGroupInput{
		Name: "  ", Description: "desc",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestJoinGroupAppendsMember(t *testing.T) {
	uc, groupRepo, _, guide, learner := groupFixture()
	ctx := context.Background()

	group, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Circle", Description: "desc"})
	require.NoError(t, err)

	joined, err := uc.JoinGroup(ctx, learner, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{guide.ID, learner.ID}, joined.Members)

	stored, err := groupRepo.GetByID(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasMember(learner.ID))
}

func TestJoinGroupIsIdempotent(t *testing.T) {
	uc, _, _, guide, learner := groupFixture()
	ctx := context.Background()

	group, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Circle", Description: "desc"})
	require.NoError(t, err)

	_, err = uc.JoinGroup(ctx, learner, group.ID)
	require.NoError(t, err)
	again, err := uc.JoinGroup(ctx, learner, group.ID)
	require.NoError(t, err)

	assert.Len(t, again.Members, 2)
}

func TestListGroupsCategorizes(t *testing.T) {
	uc, groupRepo, _, guide, learner := groupFixture()
	ctx := context.Background()

	created, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Mine", Description: "desc"})
	require.NoError(t, err)

	require.NoError(t, groupRepo.Create(ctx, &entity.Group{
		Name: "Joined", Description: "desc", CreatedBy: "other", Members: []string{"other", guide.ID},
	}))
	require.NoError(t, groupRepo.Create(ctx, &entity.Group{
		Name: "Open", Description: "desc", CreatedBy: "other", Members: []string{"other"},
	}))

	dir, err := uc.ListGroups(ctx, guide, "")
	require.NoError(t, err)

	require.Len(t, dir.Created, 1)
	assert.Equal(t, created.ID, dir.Created[0].ID)
	require.Len(t, dir.Enrolled, 1)
	assert.Equal(t, "Joined", dir.Enrolled[0].Name)
	require.Len(t, dir.Available, 1)
	assert.Equal(t, "Open", dir.Available[0].Name)

	// Everything is available to a non-member.
	dir, err = uc.ListGroups(ctx, learner, "")
	require.NoError(t, err)
	assert.Empty(t, dir.Created)
	assert.Empty(t, dir.Enrolled)
	assert.Len(t, dir.Available, 3)
}

func TestListGroupsFilters(t *testing.T) {
	uc, _, _, guide, _ := groupFixture()
	ctx := context.Background()

	_, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Go Study", Description: "compilers"})
	require.NoError(t, err)
	_, err = uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Interviews", Description: "prep"})
	require.NoError(t, err)

	dir, err := uc.ListGroups(ctx, guide, "compilers")
	require.NoError(t, err)
	require.Len(t, dir.Created, 1)
	assert.Equal(t, "Go Study", dir.Created[0].Name)
}

func TestSendGroupMessageRequiresMembership(t *testing.T) {
	uc, _, _, guide, learner := groupFixture()
	ctx := context.Background()

	group, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Circle", Description: "desc"})
	require.NoError(t, err)

	_, err = uc.SendGroupMessage(ctx, learner, group.ID, "hi")
	assert.True(t, errors.IsForbidden(err))
}

func TestGroupStreamIsAppendOnly(t *testing.T) {
	// Joining mid-conversation changes who may read, not what was
	// already written: the full history is visible to a new member and
	// concurrent sends never displace each other.
	uc, _, _, guide, learner := groupFixture()
	ctx := context.Background()

	group, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Circle", Description: "desc"})
	require.NoError(t, err)

	_, err = uc.SendGroupMessage(ctx, guide, group.ID, "before join")
	require.NoError(t, err)

	_, err = uc.JoinGroup(ctx, learner, group.ID)
	require.NoError(t, err)
	_, err = uc.SendGroupMessage(ctx, learner, group.ID, "after join")
	require.NoError(t, err)

	messages, err := uc.FetchGroupMessages(ctx, learner, group.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "before join", messages[0].Body)
	assert.Equal(t, "after join", messages[1].Body)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)
}

func TestFetchGroupMessagesRequiresMembership(t *testing.T) {
	uc, _, _, guide, learner := groupFixture()
	ctx := context.Background()

	group, err := uc.CreateGroup(ctx, guide, CreateGroupInput{Name: "Circle", Description: "desc"})
	require.NoError(t, err)

	_, err = uc.FetchGroupMessages(ctx, learner, group.ID)
	assert.True(t, errors.IsForbidden(err))
}
