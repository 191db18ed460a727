package usecase

import (
	"context"
	"strings"
	"time"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/internal/infrastructure/ratelimit"
	"mentorlink/pkg/errors"
)

type JobUseCase struct {
	jobRepo     repository.JobRepository
	rateLimiter *ratelimit.RateLimiter
}

func NewJobUseCase(jobRepo repository.JobRepository) *JobUseCase {
	return &JobUseCase{
		jobRepo:     jobRepo,
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

type JobInput struct {
	CompanyName         string `json:"company_name" validate:"required,min=2,max=100"`
	JobRole             string `json:"job_role" validate:"required,min=2,max=100"`
	JobType             string `json:"job_type" validate:"required,oneof=full-time part-time internship contract"`
	Content             string `json:"content" validate:"required,max=5000"`
	Location            string `json:"location"`
	Salary              string `json:"salary"`
	YearsOfExperience   string `json:"years_of_experience"`
	Link                string `json:"link" validate:"omitempty,url"`
	Source              string `json:"source"`
	ApplicationDeadline string `json:"application_deadline"`
}

func (uc *JobUseCase) CreateJob(ctx context.Context, actor *entity.User, input JobInput) (*entity.JobOpening, error) {
	if actor.Role != entity.RoleGuide && actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only guides can post job openings", nil)
	}
	if allowed, _ := uc.rateLimiter.Allow(actor.ID, "post_job"); !allowed {
		return nil, errors.TooManyRequests("You are posting jobs too quickly")
	}

	job := &entity.JobOpening{
		CompanyName:         strings.TrimSpace(input.CompanyName),
		JobRole:             strings.TrimSpace(input.JobRole),
		JobType:             input.JobType,
		Content:             input.Content,
		Location:            input.Location,
		Salary:              input.Salary,
		YearsOfExperience:   input.YearsOfExperience,
		Link:                input.Link,
		Source:              input.Source,
		ApplicationDeadline: input.ApplicationDeadline,
		PostedBy:            actor.ID,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) GetJob(ctx context.Context, id string) (*entity.JobOpening, error) {
	return uc.jobRepo.GetByID(ctx, id)
}

// ListJobs returns openings newest first, optionally filtered by one
// term over company, role and location.
func (uc *JobUseCase) ListJobs(ctx context.Context, search string) ([]*entity.JobOpening, error) {
	jobs, err := uc.jobRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return jobs, nil
	}

	term := strings.ToLower(search)
	filtered := jobs[:0]
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.CompanyName), term) ||
			strings.Contains(strings.ToLower(j.JobRole), term) ||
			strings.Contains(strings.ToLower(j.Location), term) {
			filtered = append(filtered, j)
		}
	}
	return filtered, nil
}

func (uc *JobUseCase) ListMyJobs(ctx context.Context, actor *entity.User) ([]*entity.JobOpening, error) {
	return uc.jobRepo.ListByPoster(ctx, actor.ID)
}

func (uc *JobUseCase) UpdateJob(ctx context.Context, actor *entity.User, id string, input JobInput) (*entity.JobOpening, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != actor.ID && actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("You can only edit your own job openings", nil)
	}

	job.CompanyName = strings.TrimSpace(input.CompanyName)
	job.JobRole = strings.TrimSpace(input.JobRole)
	job.JobType = input.JobType
	job.Content = input.Content
	job.Location = input.Location
	job.Salary = input.Salary
	job.YearsOfExperience = input.YearsOfExperience
	job.Link = input.Link
	job.Source = input.Source
	job.ApplicationDeadline = input.ApplicationDeadline
	job.UpdatedAt = time.Now()

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUseCase) DeleteJob(ctx context.Context, actor *entity.User, id string) error {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job.PostedBy != actor.ID && actor.Role != entity.RoleAdmin {
		return errors.Forbidden("You can only delete your own job openings", nil)
	}
	return uc.jobRepo.Delete(ctx, id)
}
