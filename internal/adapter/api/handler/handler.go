package handler

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/usecase"
	"mentorlink/pkg/errors"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	chatHandler      *ChatHandler
	groupHandler     *GroupHandler
	jobHandler       *JobHandler
	communityHandler *CommunityHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	chatUseCase *usecase.ChatUseCase,
	groupUseCase *usecase.GroupUseCase,
	jobUseCase *usecase.JobUseCase,
	communityUseCase *usecase.CommunityUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	groupHandler = NewGroupHandler(groupUseCase)
	jobHandler = NewJobHandler(jobUseCase)
	communityHandler = NewCommunityHandler(communityUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetGroupHandler() *GroupHandler {
	return groupHandler
}

func GetJobHandler() *JobHandler {
	return jobHandler
}

func GetCommunityHandler() *CommunityHandler {
	return communityHandler
}

// currentActor reads the account loaded by the role middleware.
func currentActor(c echo.Context) (*entity.User, error) {
	actor, ok := c.Get("actor").(*entity.User)
	if !ok {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return actor, nil
}
