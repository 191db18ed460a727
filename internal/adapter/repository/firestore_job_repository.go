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

type firestoreJobRepository struct {
	client *firestore.Client
}

func NewFirestoreJobRepository(client *firestore.Client) repository.JobRepository {
	return &firestoreJobRepository{
		client: client,
	}
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *entity.JobOpening) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.client.Collection(jobOpeningsCollection).Doc(job.ID).Set(ctx, job)
	if err != nil {
		return storeErr("Job opening", err)
	}
	return nil
}

func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*entity.JobOpening, error) {
	doc, err := r.client.Collection(jobOpeningsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeErr("Job opening", err)
	}

	var job entity.JobOpening
	if err := doc.DataTo(&job); err != nil {
		return nil, storeErr("Job opening", err)
	}
	return &job, nil
}

func (r *firestoreJobRepository) List(ctx context.Context) ([]*entity.JobOpening, error) {
	query := r.client.Collection(jobOpeningsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(query.Documents(ctx))
}

func (r *firestoreJobRepository) ListByPoster(ctx context.Context, userID string) ([]*entity.JobOpening, error) {
	query := r.client.Collection(jobOpeningsCollection).
		Where("postedBy", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(query.Documents(ctx))
}

func (r *firestoreJobRepository) Update(ctx context.Context, job *entity.JobOpening) error {
	job.UpdatedAt = time.Now()

	_, err := r.client.Collection(jobOpeningsCollection).Doc(job.ID).Set(ctx, job)
	if err != nil {
		return storeErr("Job opening", err)
	}
	return nil
}

func (r *firestoreJobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(jobOpeningsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return storeErr("Job opening", err)
	}
	return nil
}

func (r *firestoreJobRepository) collect(iter *firestore.DocumentIterator) ([]*entity.JobOpening, error) {
	var jobs []*entity.JobOpening
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeErr("Job openings", err)
		}

		var job entity.JobOpening
		if err := doc.DataTo(&job); err != nil {
			continue
		}
		jobs = append(jobs, &job)
	}
	return jobs, nil
}
