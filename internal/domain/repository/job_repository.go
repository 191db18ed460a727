package repository

import (
	"context"

	"mentorlink/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.JobOpening) error
	GetByID(ctx context.Context, id string) (*entity.JobOpening, error)
	List(ctx context.Context) ([]*entity.JobOpening, error)
	ListByPoster(ctx context.Context, userID string) ([]*entity.JobOpening, error)
	Update(ctx context.Context, job *entity.JobOpening) error
	Delete(ctx context.Context, id string) error
}
