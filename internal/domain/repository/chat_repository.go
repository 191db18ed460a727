package repository

import (
	"context"

	"mentorlink/internal/domain/entity"
)

// ChatRepository abstracts both persistence shapes the chat layer uses:
// direct conversations stored as single documents replaced whole, and
// group messages stored as independent rows in an append-only stream.
type ChatRepository interface {
	// GetConversation returns NOT_FOUND for a thread that has never been
	// created. That is an expected outcome, distinct from a transport
	// failure, and callers treat it as zero messages.
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)

	// UpsertConversation replaces the whole document keyed by its ID.
	// There is no partial update and no concurrency token: two writers
	// racing between read and write lose one of the appends. Known
	// limitation, not remediated.
	UpsertConversation(ctx context.Context, conv *entity.Conversation) error

	// ListConversationsByParticipant returns every conversation where the
	// actor is either participant, ordered by lastMessageAt descending.
	ListConversationsByParticipant(ctx context.Context, actorID string) ([]*entity.Conversation, error)

	// ListGroupMessages returns a group's stream ascending by creation
	// time; empty slice when there are none.
	ListGroupMessages(ctx context.Context, groupID string) ([]*entity.GroupMessage, error)

	// AppendGroupMessage inserts one message as its own row. No
	// read-modify-write, so concurrent appends cannot drop each other.
	AppendGroupMessage(ctx context.Context, msg *entity.GroupMessage) error
}
