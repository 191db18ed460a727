package chatsync

import "mentorlink/internal/domain/entity"

// Target identifies what a session is synchronizing: a direct
// conversation or a group stream. The two cases are dispatched once at
// session start instead of threading a boolean through every operation.
type Target interface {
	targetID() string
}

type DirectTarget struct {
	ConversationID string
}

func (t DirectTarget) targetID() string { return t.ConversationID }

type GroupTarget struct {
	GroupID string
}

func (t GroupTarget) targetID() string { return t.GroupID }

// Snapshot is one full delivery of the target's current message
// sequence. Exactly one of the two slices is set, matching the session's
// target kind. There is no incremental diff: every fetch replaces the
// previous snapshot whole.
type Snapshot struct {
	Direct []entity.Message
	Group  []*entity.GroupMessage
}
