package entity

import "time"

// Community is a public discussion board.
type Community struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	CreatedBy   string    `json:"created_by" firestore:"createdBy"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// CommunityPost is one entry in a community's chronological feed.
type CommunityPost struct {
	ID          string    `json:"id" firestore:"id"`
	CommunityID string    `json:"community_id" firestore:"communityId"`
	UserID      string    `json:"user_id" firestore:"userId"`
	AuthorName  string    `json:"author_name" firestore:"authorName"`
	Content     string    `json:"content" firestore:"content"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
