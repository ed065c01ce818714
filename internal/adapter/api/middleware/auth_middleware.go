package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/errors"
	"soukly/pkg/response"
)

type AuthMiddleware struct {
	authProvider usecase.AuthProvider
	authUseCase  *usecase.AuthUseCase
}

func NewAuthMiddleware(authProvider usecase.AuthProvider, authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authProvider: authProvider,
		authUseCase:  authUseCase,
	}
}

// Authenticate accepts either a provider ID token (email login) or the HS256
// token issued by phone login, and stores the resolved uid on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		uid, err := m.authProvider.VerifyToken(c.Request().Context(), token)
		if err != nil {
			uid, err = m.authUseCase.VerifyPhoneToken(token)
			if err != nil {
				return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
			}
		}

		c.Set("uid", uid)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}
