package usecase

import (
	"context"
	"time"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/logger"
)

// FirebaseAuthClient is what the auth flow needs from the identity
// provider.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	DisableUser(ctx context.Context, uid string, disabled bool) error
}

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
	Role     string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleLearner && input.Role != entity.RoleGuide {
		return nil, errors.BadRequest("Role must be learner or guide", nil)
	}

	// Usernames double as conversation key parts, so they are unique
	// within a role.
	if existing, err := uc.userRepo.GetByUsername(ctx, input.Role, input.Username); err == nil && existing != nil {
		return nil, errors.Conflict("Username already taken")
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Name:      input.Name,
		Role:      input.Role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if user.Status != "active" {
		return nil, errors.Forbidden("Account is suspended", nil)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Actor resolves the authenticated user record for a verified UID.
func (uc *AuthUseCase) Actor(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, token string) (string, error) {
	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid token", err)
	}

	newToken, err := uc.firebaseAuth.GenerateToken(ctx, uid)
	if err != nil {
		return "", errors.Internal("Failed to generate new token", err)
	}
	return newToken, nil
}
