package entity

import (
	"strings"
	"time"
)

// Conversation is a direct message thread between one learner and one
// guide. The whole thread is a single document: the message sequence is
// embedded and every mutation writes the document back whole.
type Conversation struct {
	ID                   string    `json:"id" firestore:"id"`
	Participant1ID       string    `json:"participant1_id" firestore:"participant1Id"`
	Participant2ID       string    `json:"participant2_id" firestore:"participant2Id"`
	Participant1Username string    `json:"participant1_username" firestore:"participant1Username"`
	Participant2Username string    `json:"participant2_username" firestore:"participant2Username"`
	Participant1Role     string    `json:"participant1_role" firestore:"participant1Role"`
	Participant2Role     string    `json:"participant2_role" firestore:"participant2Role"`
	Messages             []Message `json:"messages" firestore:"messages"`
	LastMessageAt        time.Time `json:"last_message_at" firestore:"lastMessageAt"`
}

// Message is one entry in a conversation's embedded sequence. The ID is
// a high-resolution timestamp, collision-resistant within a thread. Seen
// is meaningful only for messages whose sender is not the viewer, and is
// monotonic: once true it never reverts.
type Message struct {
	ID             int64     `json:"id" firestore:"id"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	SenderUsername string    `json:"sender_username" firestore:"senderUsername"`
	SenderName     string    `json:"sender_name" firestore:"senderName"`
	Body           string    `json:"body" firestore:"body"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	Seen           bool      `json:"seen" firestore:"seen"`
}

// ConversationKey derives the conversation identifier for a learner↔guide
// pair. The learner's username always takes the first slot, so both
// participants compute the same key without a lookup: a learner puts
// themselves first, a guide puts the other party first. Not an
// alphabetical sort.
func ConversationKey(actorRole, actorUsername, otherUsername string) string {
	if actorRole == RoleLearner {
		return actorUsername + "-" + otherUsername
	}
	return otherUsername + "-" + actorUsername
}

// CounterpartUsername extracts the other participant's username from a
// conversation key. Empty when ownUsername is not one of the two parts:
// a caller the key does not name has no counterpart in it.
func CounterpartUsername(conversationID, ownUsername string) string {
	parts := strings.SplitN(conversationID, "-", 2)
	if len(parts) != 2 {
		return ""
	}
	switch ownUsername {
	case parts[0]:
		return parts[1]
	case parts[1]:
		return parts[0]
	}
	return ""
}

// Counterpart returns the other participant's id, username and role as
// seen by actorID.
func (c *Conversation) Counterpart(actorID string) (id, username, role string) {
	if c.Participant1ID == actorID {
		return c.Participant2ID, c.Participant2Username, c.Participant2Role
	}
	return c.Participant1ID, c.Participant1Username, c.Participant1Role
}

// HasParticipant reports whether actorID is one of the two participants.
func (c *Conversation) HasParticipant(actorID string) bool {
	return c.Participant1ID == actorID || c.Participant2ID == actorID
}

// LastMessage returns the most recent message, or nil for an empty
// thread.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// ActivityTime is the sort key for the chat list: the last message's
// creation time, falling back to the conversation-level timestamp when
// the thread is empty.
func (c *Conversation) ActivityTime() time.Time {
	if last := c.LastMessage(); last != nil {
		return last.CreatedAt
	}
	return c.LastMessageAt
}
