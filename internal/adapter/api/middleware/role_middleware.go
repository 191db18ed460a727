package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/domain/entity"
	"mentorlink/internal/domain/repository"
)

// RoleMiddleware loads the authenticated account and enforces role
// requirements. It runs after AuthMiddleware, which puts the uid on the
// context.
type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

// LoadActor resolves the uid into the full account record and stores it
// under "actor". Suspended accounts are rejected here for every
// protected route.
func (m *RoleMiddleware) LoadActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
		}

		if user.Status != "active" {
			return echo.NewHTTPError(http.StatusForbidden, "Account is suspended")
		}

		c.Set("actor", user)
		return next(c)
	}
}

func (m *RoleMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get("actor").(*entity.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
		}
	}
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)(next)
}
