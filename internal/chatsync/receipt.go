package chatsync

import (
	"context"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
)

// ReceiptTracker flips seen flags for a direct conversation's viewer.
// Group messages carry no seen state; the tracker is never invoked for
// group targets.
type ReceiptTracker struct {
	repo repository.ChatRepository
}

func NewReceiptTracker(repo repository.ChatRepository) *ReceiptTracker {
	return &ReceiptTracker{repo: repo}
}

// CatchUp inspects only the most recent message. If its sender is not
// the viewer and it has not been seen, every message from the other
// participant is marked seen in one batch and the document written back
// whole. Checking just the last message keeps a caught-up conversation
// from writing on every poll; the batch flip is what makes that check
// sufficient. Seen never reverts to false. Returns whether a write
// happened.
func (t *ReceiptTracker) CatchUp(ctx context.Context, conv *entity.Conversation, viewerID string) (bool, error) {
	last := conv.LastMessage()
	if last == nil || last.SenderID == viewerID || last.Seen {
		return false, nil
	}

	for i := range conv.Messages {
		if conv.Messages[i].SenderID != viewerID {
			conv.Messages[i].Seen = true
		}
	}

	if err := t.repo.UpsertConversation(ctx, conv); err != nil {
		return false, err
	}
	return true, nil
}
