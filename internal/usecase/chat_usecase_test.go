package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink/internal/domain/entity"
	"mentorlink/pkg/errors"
)

func chatFixture() (*ChatUseCase, *fakeChatRepository, *fakeGroupRepository, *entity.User, *entity.User) {
	learner := &entity.User{ID: "u1", Username: "alice", Name: "Alice", Role: entity.RoleLearner, Status: "active"}
	guide := &entity.User{ID: "u2", Username: "bob", Name: "Bob", Role: entity.RoleGuide, Status: "active"}

	chatRepo := newFakeChatRepository()
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository(learner, guide)

	uc := NewChatUseCase(chatRepo, groupRepo, userRepo, nil)
	return uc, chatRepo, groupRepo, learner, guide
}

func TestOpenConversationCreatesEmptyThread(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()

	conv, err := uc.OpenConversation(context.Background(), learner, "bob")
	require.NoError(t, err)

	assert.Equal(t, "alice-bob", conv.ID)
	assert.Empty(t, conv.Messages)
	assert.Equal(t, "u1", conv.Participant1ID)
	assert.Equal(t, "u2", conv.Participant2ID)
}

func TestOpenConversationSameThreadFromBothSides(t *testing.T) {
	uc, _, _, learner, guide := chatFixture()

	fromLearner, err := uc.OpenConversation(context.Background(), learner, "bob")
	require.NoError(t, err)

	fromGuide, err := uc.OpenConversation(context.Background(), guide, "alice")
	require.NoError(t, err)

	assert.Equal(t, fromLearner.ID, fromGuide.ID)
}

func TestOpenConversationIsIdempotent(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()
	ctx := context.Background()

	first, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, learner, first.ID, "hello")
	require.NoError(t, err)

	// Opening again returns the existing thread, messages intact.
	again, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, again.Messages, 1)
}

func TestOpenConversationUnknownCounterpart(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()

	_, err := uc.OpenConversation(context.Background(), learner, "nobody")
	assert.True(t, errors.IsNotFound(err))
}

func TestSendMessageAppendsWithDistinctIDs(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	first, err := uc.SendMessage(ctx, learner, conv.ID, "one")
	require.NoError(t, err)
	second, err := uc.SendMessage(ctx, learner, conv.ID, "two")
	require.NoError(t, err)

	require.Len(t, second.Messages, 2)
	assert.Equal(t, "one", second.Messages[0].Body)
	assert.Equal(t, "two", second.Messages[1].Body)
	assert.NotEqual(t, first.Messages[0].ID, second.Messages[1].ID)
	assert.False(t, second.Messages[1].Seen)
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	outsider := &entity.User{ID: "u9", Username: "mallory", Role: entity.RoleLearner}
	_, err = uc.SendMessage(ctx, outsider, conv.ID, "hi")
	assert.True(t, errors.IsForbidden(err))
}

func TestSendMessageEmptyBody(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, learner, conv.ID, "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageCreatesMissingThreadFromKey(t *testing.T) {
	// A send that raced the lazy creation rebuilds the document from
	// the conversation key.
	uc, _, _, learner, _ := chatFixture()

	conv, err := uc.SendMessage(context.Background(), learner, "alice-bob", "hello")
	require.NoError(t, err)

	assert.Equal(t, "alice-bob", conv.ID)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "u2", conv.Participant2ID)
}

func TestSendMessageRejectsKeyNotNamingActor(t *testing.T) {
	// A guide named nowhere in the key cannot rebuild another pair's
	// missing document and inject into it.
	uc, chatRepo, _, _, _ := chatFixture()
	ctx := context.Background()

	mallory := &entity.User{ID: "u9", Username: "mallory", Role: entity.RoleGuide, Status: "active"}
	_, err := uc.SendMessage(ctx, mallory, "alice-bob", "injected")
	assert.True(t, errors.IsForbidden(err))

	// Nothing was written under the pair's key.
	_, err = chatRepo.GetConversation(ctx, "alice-bob")
	assert.True(t, errors.IsNotFound(err))
}

func TestSendMessageRejectsActorInWrongSlot(t *testing.T) {
	// The learner slot comes first. A guide sitting in the learner slot
	// of a key is not that thread's guide, even though the key names him.
	uc, chatRepo, _, _, guide := chatFixture()
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, guide, "bob-alice", "hello")
	assert.True(t, errors.IsForbidden(err))

	_, err = chatRepo.GetConversation(ctx, "bob-alice")
	assert.True(t, errors.IsNotFound(err))
}

func TestSendMessageLostUpdateOnConcurrentWrite(t *testing.T) {
	// The store replaces the document whole with no concurrency token.
	// A writer that read before another's write overwrites it; the
	// earlier append is lost and only a later fetch reveals that.
	uc, chatRepo, _, learner, guide := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	// Guide reads the thread before the learner's send lands.
	staleBase, err := chatRepo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, learner, conv.ID, "from alice")
	require.NoError(t, err)

	// Guide appends onto the stale base and writes it back whole.
	staleBase.Messages = append(staleBase.Messages, entity.Message{
		ID:        time.Now().UnixNano(),
		SenderID:  guide.ID,
		Body:      "from bob",
		CreatedAt: time.Now(),
	})
	require.NoError(t, chatRepo.UpsertConversation(ctx, staleBase))

	stored, err := chatRepo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "from bob", stored.Messages[0].Body)
}

func TestFetchConversationNeverWrittenReadsEmpty(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()

	conv, err := uc.FetchConversation(context.Background(), learner, "alice-bob")
	require.NoError(t, err)
	assert.Empty(t, conv.Messages)
}

func TestFetchConversationMarksIncomingSeen(t *testing.T) {
	uc, chatRepo, _, learner, guide := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, guide, conv.ID, "hello alice")
	require.NoError(t, err)

	fetched, err := uc.FetchConversation(ctx, learner, conv.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Messages, 1)
	assert.True(t, fetched.Messages[0].Seen)

	stored, err := chatRepo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, stored.Messages[0].Seen)
}

func TestFetchConversationRejectsOutsider(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)

	outsider := &entity.User{ID: "u9", Username: "mallory", Role: entity.RoleGuide}
	_, err = uc.FetchConversation(ctx, outsider, conv.ID)
	assert.True(t, errors.IsForbidden(err))
}

func TestFetchConversationRejectsOutsiderOnMissingThread(t *testing.T) {
	// The empty-thread read is only for the pair the key names; anyone
	// else can neither observe nor pre-activate another pair's thread.
	uc, _, _, _, _ := chatFixture()

	outsider := &entity.User{ID: "u9", Username: "mallory", Role: entity.RoleGuide}
	_, err := uc.FetchConversation(context.Background(), outsider, "alice-bob")
	assert.True(t, errors.IsForbidden(err))
}

func TestRecipientResolvesCounterpart(t *testing.T) {
	uc, _, _, learner, _ := chatFixture()

	recipient, err := uc.Recipient(context.Background(), learner, "alice-bob")
	require.NoError(t, err)
	assert.Equal(t, "u2", recipient.ID)
}

func TestListChatsSortsByActivityDescending(t *testing.T) {
	learner := &entity.User{ID: "u1", Username: "alice", Name: "Alice", Role: entity.RoleLearner}
	guideB := &entity.User{ID: "u2", Username: "bob", Name: "Bob", Role: entity.RoleGuide}
	guideC := &entity.User{ID: "u3", Username: "carol", Name: "Carol", Role: entity.RoleGuide}

	chatRepo := newFakeChatRepository()
	groupRepo := newFakeGroupRepository()
	userRepo := newFakeUserRepository(learner, guideB, guideC)
	uc := NewChatUseCase(chatRepo, groupRepo, userRepo, nil)
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	require.NoError(t, chatRepo.UpsertConversation(ctx, &entity.Conversation{
		ID: "alice-bob", Participant1ID: "u1", Participant2ID: "u2",
		Participant1Username: "alice", Participant2Username: "bob",
		Participant1Role: entity.RoleLearner, Participant2Role: entity.RoleGuide,
		Messages:      []entity.Message{{ID: 1, SenderID: "u2", Body: "old", CreatedAt: older}},
		LastMessageAt: older,
	}))
	require.NoError(t, chatRepo.UpsertConversation(ctx, &entity.Conversation{
		ID: "alice-carol", Participant1ID: "u1", Participant2ID: "u3",
		Participant1Username: "alice", Participant2Username: "carol",
		Participant1Role: entity.RoleLearner, Participant2Role: entity.RoleGuide,
		Messages:      []entity.Message{{ID: 2, SenderID: "u3", Body: "new", CreatedAt: newer}},
		LastMessageAt: newer,
	}))

	list, err := uc.ListChats(ctx, learner, "")
	require.NoError(t, err)
	require.Len(t, list.Chats, 2)

	assert.Equal(t, "alice-carol", list.Chats[0].ConversationID)
	assert.Equal(t, "alice-bob", list.Chats[1].ConversationID)
	assert.Equal(t, "Carol", list.Chats[0].OtherName)
	assert.Equal(t, "new", list.Chats[0].LastMessage)
}

func TestListChatsFiltersBySearchTerm(t *testing.T) {
	uc, _, groupRepo, learner, guide := chatFixture()
	ctx := context.Background()

	conv, err := uc.OpenConversation(ctx, learner, "bob")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, guide, conv.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, groupRepo.Create(ctx, &entity.Group{
		Name: "Go Study Circle", Description: "weekly", CreatedBy: "u2", Members: []string{"u1", "u2"},
	}))
	require.NoError(t, groupRepo.Create(ctx, &entity.Group{
		Name: "Rust Club", Description: "monthly", CreatedBy: "u2", Members: []string{"u1", "u2"},
	}))

	list, err := uc.ListChats(ctx, learner, "go study")
	require.NoError(t, err)

	assert.Empty(t, list.Chats)
	require.Len(t, list.Groups, 1)
	assert.Equal(t, "Go Study Circle", list.Groups[0].Name)

	list, err = uc.ListChats(ctx, learner, "bob")
	require.NoError(t, err)
	require.Len(t, list.Chats, 1)
	assert.Empty(t, list.Groups)
}
