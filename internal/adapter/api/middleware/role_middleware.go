package middleware

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/response"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{userRepo: userRepo}
}

// AllowTo admits only users whose role is in the given set. Runs after
// Authenticate, which stores the uid.
func (m *RoleMiddleware) AllowTo(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}

			user, err := m.userRepo.GetByID(c.Request().Context(), uid)
			if err != nil {
				return response.Error(c, errors.Unauthorized("Authentication required", err))
			}

			for _, role := range roles {
				if user.Role == role {
					c.Set("role", user.Role)
					return next(c)
				}
			}
			return response.Error(c, errors.Forbidden("Insufficient permissions", nil))
		}
	}
}

// Staff admits admin and manager accounts.
func (m *RoleMiddleware) Staff(next echo.HandlerFunc) echo.HandlerFunc {
	return m.AllowTo(entity.RoleAdmin, entity.RoleManager)(next)
}

// Admin admits admin accounts only.
func (m *RoleMiddleware) Admin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.AllowTo(entity.RoleAdmin)(next)
}
