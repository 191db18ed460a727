package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/pkg/logger"
)

type firestoreGroupRepository struct {
	client *firestore.Client
}

func NewFirestoreGroupRepository(client *firestore.Client) repository.GroupRepository {
	return &firestoreGroupRepository{
		client: client,
	}
}

func (r *firestoreGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(groupsCollection).Doc(group.ID).Set(ctx, group)
	if err != nil {
		return storeErr("Group", err)
	}
	return nil
}

func (r *firestoreGroupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	doc, err := r.client.Collection(groupsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("Group", err)
	}

	var group entity.Group
	if err := doc.DataTo(&group); err != nil {
		return nil, storeErr("Group", err)
	}
	return &group, nil
}

func (r *firestoreGroupRepository) List(ctx context.Context) ([]*entity.Group, error) {
	query := r.client.Collection(groupsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreGroupRepository) ListByMember(ctx context.Context, userID string) ([]*entity.Group, error) {
	query := r.client.Collection(groupsCollection).Where("members", "array-contains", userID)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreGroupRepository) ListByCreator(ctx context.Context, userID string) ([]*entity.Group, error) {
	query := r.client.Collection(groupsCollection).
		Where("createdBy", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query.Documents(ctx))
}

// UpdateMembers replaces the member array whole, like the conversation
// document replace: a racing join can be lost.
func (r *firestoreGroupRepository) UpdateMembers(ctx context.Context, groupID string, members []string) error {
	_, err := r.client.Collection(groupsCollection).Doc(groupID).Update(ctx, []firestore.Update{
		{Path: "members", Value: members},
	})
	if err != nil {
		return storeErr("Group", err)
	}
	return nil
}

func (r *firestoreGroupRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Group, error) {
	var groups []*entity.Group
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing groups: %v", err)
			return nil, storeErr("Groups", err)
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			logger.Warn("Skipping malformed group %s: %v", doc.Ref.ID, err)
			continue
		}
		groups = append(groups, &group)
	}
	return groups, nil
}
