package repository

import (
	"context"

	"mentorlink/internal/domain/entity"
)

// UserRepository reads and writes actor records. Learners, guides and
// admins live in separate collections keyed by role, mirroring the
// per-role sources the chat list resolves display identities from.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByRoleAndID(ctx context.Context, role, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, role, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)

	// GetProfileSummary resolves the display name and avatar for a
	// participant from the collection matching kind (learner or guide).
	GetProfileSummary(ctx context.Context, kind, id string) (*entity.ProfileSummary, error)
}
