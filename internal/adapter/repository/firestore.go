package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mentorlink/pkg/errors"
)

const (
	learnersCollection       = "learners"
	guidesCollection         = "guides"
	adminsCollection         = "admins"
	conversationsCollection  = "chat_conversations"
	groupsCollection         = "groups"
	groupMessagesCollection  = "group_chats"
	jobOpeningsCollection    = "job_openings"
	communitiesCollection    = "communities"
	communityPostsCollection = "community_posts"
)

// storeErr classifies a Firestore failure: NotFound stays expected-empty,
// unreachable-backend codes become transient so the caller retries on the
// next tick, everything else is internal.
func storeErr(resource string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errors.NotFound(resource, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return errors.Transient("Backend temporarily unreachable", err)
	default:
		return errors.Internal("Failed to access "+resource, err)
	}
}
