package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func roleCollection(role string) string {
	switch role {
	case entity.RoleLearner:
		return learnersCollection
	case entity.RoleGuide:
		return guidesCollection
	default:
		return adminsCollection
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection(roleCollection(user.Role)).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return storeErr("User", err)
	}
	return nil
}

// GetByID resolves an actor whose role is not yet known: the same UID
// exists in exactly one of the per-role collections.
func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, role := range []string{entity.RoleLearner, entity.RoleGuide, entity.RoleAdmin} {
		user, err := r.GetByRoleAndID(ctx, role, id)
		if err == nil {
			return user, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *firestoreUserRepository) GetByRoleAndID(ctx context.Context, role, id string) (*entity.User, error) {
	doc, err := r.client.Collection(roleCollection(role)).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("User", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) GetByUsername(ctx context.Context, role, username string) (*entity.User, error) {
	iter := r.client.Collection(roleCollection(role)).Where("username", "==", username).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, storeErr("User", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	_, err := r.client.Collection(roleCollection(user.Role)).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return storeErr("User", err)
	}
	return nil
}

func (r *firestoreUserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	iter := r.client.Collection(roleCollection(role)).OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeErr("Users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			continue
		}
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) GetProfileSummary(ctx context.Context, kind, id string) (*entity.ProfileSummary, error) {
	doc, err := r.client.Collection(roleCollection(kind)).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("Profile", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}

	return &entity.ProfileSummary{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}
