package chatsync

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink/internal/domain/entity"
	"mentorlink/pkg/errors"
)

// fakeChatStore backs the chatsync tests with the same replace
// semantics as the real store.
type fakeChatStore struct {
	mu            sync.Mutex
	conversations map[string]entity.Conversation
	groupMessages map[string][]*entity.GroupMessage
	writes        int
	getErr        error
	listErr       error
	upsertErr     error
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		conversations: make(map[string]entity.Conversation),
		groupMessages: make(map[string][]*entity.GroupMessage),
	}
}

func (f *fakeChatStore) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	conv, ok := f.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	messages := make([]entity.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	conv.Messages = messages
	return &conv, nil
}

func (f *fakeChatStore) UpsertConversation(ctx context.Context, conv *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return f.upsertErr
	}
	messages := make([]entity.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	stored := *conv
	stored.Messages = messages
	f.conversations[conv.ID] = stored
	f.writes++
	return nil
}

func (f *fakeChatStore) ListConversationsByParticipant(ctx context.Context, actorID string) ([]*entity.Conversation, error) {
	return nil, nil
}

func (f *fakeChatStore) ListGroupMessages(ctx context.Context, groupID string) ([]*entity.GroupMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*entity.GroupMessage{}, f.groupMessages[groupID]...), nil
}

func (f *fakeChatStore) AppendGroupMessage(ctx context.Context, msg *entity.GroupMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.groupMessages[msg.GroupID] = append(f.groupMessages[msg.GroupID], msg)
	return nil
}

func (f *fakeChatStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func TestCatchUpFlipsIncomingBatch(t *testing.T) {
	store := newFakeChatStore()
	tracker := NewReceiptTracker(store)
	ctx := context.Background()

	conv := &entity.Conversation{
		ID: "alice-bob",
		Messages: []entity.Message{
			{ID: 1, SenderID: "guide", Seen: false},
			{ID: 2, SenderID: "learner", Seen: false},
			{ID: 3, SenderID: "guide", Seen: false},
		},
	}
	require.NoError(t, store.UpsertConversation(ctx, conv))

	wrote, err := tracker.CatchUp(ctx, conv, "learner")
	require.NoError(t, err)
	assert.True(t, wrote)

	stored, err := store.GetConversation(ctx, "alice-bob")
	require.NoError(t, err)
	assert.True(t, stored.Messages[0].Seen)
	assert.True(t, stored.Messages[2].Seen)
	// The viewer's own message keeps sender-side semantics.
	assert.False(t, stored.Messages[1].Seen)
}

func TestCatchUpSkipsWhenLastIsOwn(t *testing.T) {
	store := newFakeChatStore()
	tracker := NewReceiptTracker(store)

	// An earlier incoming message is still unseen, but the last message
	// is the viewer's: the last-message check wins and nothing writes.
	conv := &entity.Conversation{
		ID: "alice-bob",
		Messages: []entity.Message{
			{ID: 1, SenderID: "guide", Seen: false},
			{ID: 2, SenderID: "learner", Seen: false},
		},
	}

	wrote, err := tracker.CatchUp(context.Background(), conv, "learner")
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 0, store.writeCount())
}

func TestCatchUpSkipsWhenCaughtUp(t *testing.T) {
	store := newFakeChatStore()
	tracker := NewReceiptTracker(store)

	conv := &entity.Conversation{
		ID: "alice-bob",
		Messages: []entity.Message{
			{ID: 1, SenderID: "guide", Seen: true},
		},
	}

	wrote, err := tracker.CatchUp(context.Background(), conv, "learner")
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 0, store.writeCount())
}

func TestCatchUpEmptyThread(t *testing.T) {
	store := newFakeChatStore()
	tracker := NewReceiptTracker(store)

	wrote, err := tracker.CatchUp(context.Background(), &entity.Conversation{ID: "alice-bob"}, "learner")
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestCatchUpPropagatesWriteError(t *testing.T) {
	store := newFakeChatStore()
	store.upsertErr = errors.Transient("store unavailable", nil)
	tracker := NewReceiptTracker(store)

	conv := &entity.Conversation{
		ID:       "alice-bob",
		Messages: []entity.Message{{ID: 1, SenderID: "guide", Seen: false}},
	}

	wrote, err := tracker.CatchUp(context.Background(), conv, "learner")
	assert.Error(t, err)
	assert.False(t, wrote)
}
