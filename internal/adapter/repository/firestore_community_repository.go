package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
)

type firestoreCommunityRepository struct {
	client *firestore.Client
}

func NewFirestoreCommunityRepository(client *firestore.Client) repository.CommunityRepository {
	return &firestoreCommunityRepository{
		client: client,
	}
}

func (r *firestoreCommunityRepository) Create(ctx context.Context, community *entity.Community) error {
	if community.ID == "" {
		community.ID = uuid.New().String()
	}
	if community.CreatedAt.IsZero() {
		community.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(communitiesCollection).Doc(community.ID).Set(ctx, community)
	if err != nil {
		return storeErr("Community", err)
	}
	return nil
}

func (r *firestoreCommunityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	doc, err := r.client.Collection(communitiesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("Community", err)
	}

	var community entity.Community
	if err := doc.DataTo(&community); err != nil {
		return nil, storeErr("Community", err)
	}
	return &community, nil
}

func (r *firestoreCommunityRepository) List(ctx context.Context) ([]*entity.Community, error) {
	iter := r.client.Collection(communitiesCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var communities []*entity.Community
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeErr("Communities", err)
		}

		var community entity.Community
		if err := doc.DataTo(&community); err != nil {
			continue
		}
		communities = append(communities, &community)
	}
	return communities, nil
}

func (r *firestoreCommunityRepository) CreatePost(ctx context.Context, post *entity.CommunityPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(communityPostsCollection).Doc(post.ID).Set(ctx, post)
	if err != nil {
		return storeErr("Community post", err)
	}
	return nil
}

func (r *firestoreCommunityRepository) ListPosts(ctx context.Context, communityID string) ([]*entity.CommunityPost, error) {
	iter := r.client.Collection(communityPostsCollection).
		Where("communityId", "==", communityID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	posts := []*entity.CommunityPost{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeErr("Community posts", err)
		}

		var post entity.CommunityPost
		if err := doc.DataTo(&post); err != nil {
			continue
		}
		posts = append(posts, &post)
	}
	return posts, nil
}
