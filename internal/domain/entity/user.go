package entity

import "time"

const (
	RoleLearner = "learner"
	RoleGuide   = "guide"
	RoleAdmin   = "admin"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Name     string `json:"name" firestore:"name"`
	Role     string `json:"role" firestore:"role"`
	Status   string `json:"status" firestore:"status"`

	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Skills    string `json:"skills,omitempty" firestore:"skills,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	ResumeURL string `json:"resume_url,omitempty" firestore:"resumeURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ProfileSummary is the display identity another participant sees in a
// chat list row: name and avatar, resolved from the role-appropriate
// collection.
type ProfileSummary struct {
	ID        string `json:"id" firestore:"id"`
	Name      string `json:"name" firestore:"name"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
}

// CounterpartRole returns the role on the other side of a direct
// conversation. Only learner and guide pair up.
func CounterpartRole(role string) string {
	if role == RoleLearner {
		return RoleGuide
	}
	return RoleLearner
}
