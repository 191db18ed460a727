package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("Conversation", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conv, nil
}

// UpsertConversation writes the whole document with Set. Full replace,
// no field-level merge: the caller owns the entire message sequence.
func (r *firestoreChatRepository) UpsertConversation(ctx context.Context, conv *entity.Conversation) error {
	_, err := r.client.Collection(conversationsCollection).Doc(conv.ID).Set(ctx, conv)
	if err != nil {
		return storeErr("Conversation", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListConversationsByParticipant(ctx context.Context, actorID string) ([]*entity.Conversation, error) {
	// Firestore cannot OR across two fields in one query, so both
	// participant slots are queried and merged.
	var convs []*entity.Conversation
	seen := make(map[string]bool)

	for _, field := range []string{"participant1Id", "participant2Id"} {
		iter := r.client.Collection(conversationsCollection).Where(field, "==", actorID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				logger.Error("Firestore error while listing conversations for %s: %v", actorID, err)
				return nil, storeErr("Conversations", err)
			}

			var conv entity.Conversation
			if err := doc.DataTo(&conv); err != nil {
				logger.Warn("Skipping malformed conversation %s: %v", doc.Ref.ID, err)
				continue
			}
			if seen[conv.ID] {
				continue
			}
			seen[conv.ID] = true
			convs = append(convs, &conv)
		}
	}

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].LastMessageAt.After(convs[j].LastMessageAt)
	})
	return convs, nil
}

func (r *firestoreChatRepository) ListGroupMessages(ctx context.Context, groupID string) ([]*entity.GroupMessage, error) {
	iter := r.client.Collection(groupMessagesCollection).
		Where("groupId", "==", groupID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	messages := []*entity.GroupMessage{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing group messages for %s: %v", groupID, err)
			return nil, storeErr("Group messages", err)
		}

		var msg entity.GroupMessage
		if err := doc.DataTo(&msg); err != nil {
			logger.Warn("Skipping malformed group message in %s: %v", groupID, err)
			continue
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}

// AppendGroupMessage is a pure insert: each message is its own document,
// so concurrent senders never overwrite each other here.
func (r *firestoreChatRepository) AppendGroupMessage(ctx context.Context, msg *entity.GroupMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(groupMessagesCollection).Doc(msg.ID).Set(ctx, msg)
	if err != nil {
		return storeErr("Group message", err)
	}
	return nil
}
