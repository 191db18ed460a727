package entity

import "time"

// Group is a named multi-member chat room. Membership is an ordered
// array replaced whole on join; there is no leave operation. Messages
// are not embedded here: they live in an append-only stream keyed by
// the group ID.
type Group struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	IconURL     string    `json:"icon_url,omitempty" firestore:"iconURL,omitempty"`
	CreatedBy   string    `json:"created_by" firestore:"createdBy"`
	Members     []string  `json:"members" firestore:"members"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// GroupMessage is an independent row in a group's message stream. Group
// messages carry no seen flag; they are never individually acknowledged.
type GroupMessage struct {
	ID         string    `json:"id" firestore:"id"`
	GroupID    string    `json:"group_id" firestore:"groupId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	Body       string    `json:"body" firestore:"body"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
