package usecase

import (
	"context"
	"io"
	"strings"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/pkg/errors"
)

// FileStorage is what the profile flows need from blob storage.
type FileStorage interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
}

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	storage      FileStorage
	profiles     *cache.ProfileCache
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	firebaseAuth FirebaseAuthClient,
	storage FileStorage,
	profiles *cache.ProfileCache,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
		storage:      storage,
		profiles:     profiles,
	}
}

type UpdateProfileInput struct {
	Name   string
	Bio    string
	Skills string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor *entity.User, input UpdateProfileInput) (*entity.User, error) {
	if name := strings.TrimSpace(input.Name); name != "" {
		actor.Name = name
	}
	actor.Bio = input.Bio
	actor.Skills = input.Skills

	if err := uc.userRepo.Update(ctx, actor); err != nil {
		return nil, err
	}

	uc.profiles.Invalidate(ctx, actor.Role, actor.ID)
	return actor, nil
}

func (uc *UserUseCase) UploadAvatar(ctx context.Context, actor *entity.User, file io.Reader, contentType string) (*entity.User, error) {
	if contentType != "image/jpeg" && contentType != "image/jpg" && contentType != "image/png" {
		return nil, errors.BadRequest("Avatar must be a JPEG or PNG image", nil)
	}

	url, err := uc.storage.UploadFile(ctx, file, contentType, "avatars")
	if err != nil {
		return nil, errors.Internal("Failed to upload avatar", err)
	}

	actor.AvatarURL = url
	if err := uc.userRepo.Update(ctx, actor); err != nil {
		return nil, err
	}

	uc.profiles.Invalidate(ctx, actor.Role, actor.ID)
	return actor, nil
}

func (uc *UserUseCase) UploadResume(ctx context.Context, actor *entity.User, file io.Reader, contentType string) (*entity.User, error) {
	if contentType != "application/pdf" {
		return nil, errors.BadRequest("Resume must be a PDF", nil)
	}

	url, err := uc.storage.UploadFile(ctx, file, contentType, "resumes")
	if err != nil {
		return nil, errors.Internal("Failed to upload resume", err)
	}

	actor.ResumeURL = url
	if err := uc.userRepo.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// ListGuides is the public guides directory, filterable by one term over
// name, username and skills.
func (uc *UserUseCase) ListGuides(ctx context.Context, search string) ([]*entity.User, error) {
	guides, err := uc.userRepo.ListByRole(ctx, entity.RoleGuide)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return guides, nil
	}

	term := strings.ToLower(search)
	filtered := guides[:0]
	for _, g := range guides {
		if strings.Contains(strings.ToLower(g.Name), term) ||
			strings.Contains(strings.ToLower(g.Username), term) ||
			strings.Contains(strings.ToLower(g.Skills), term) {
			filtered = append(filtered, g)
		}
	}
	return filtered, nil
}

// ListUsers is the admin view over one role's collection.
func (uc *UserUseCase) ListUsers(ctx context.Context, actor *entity.User, role string) ([]*entity.User, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Admin privileges required", nil)
	}
	return uc.userRepo.ListByRole(ctx, role)
}

// SetUserStatus suspends or reactivates an account, in both the record
// and the identity provider.
func (uc *UserUseCase) SetUserStatus(ctx context.Context, actor *entity.User, role, uid, status string) (*entity.User, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Admin privileges required", nil)
	}
	if status != "active" && status != "suspended" {
		return nil, errors.BadRequest("Status must be active or suspended", nil)
	}

	user, err := uc.userRepo.GetByRoleAndID(ctx, role, uid)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.firebaseAuth.DisableUser(ctx, uid, status == "suspended"); err != nil {
		return nil, errors.Internal("Failed to update authentication account", err)
	}

	uc.profiles.Invalidate(ctx, role, uid)
	return user, nil
}
