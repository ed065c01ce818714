package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
)

type AuthHandler struct {
	authUseCase      *usecase.AuthUseCase
	twoFactorUseCase *usecase.TwoFactorUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, twoFactorUseCase *usecase.TwoFactorUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase:      authUseCase,
		twoFactorUseCase: twoFactorUseCase,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
	Business bool   `json:"business"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Gender:   req.Gender,
		Business: req.Business,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Registration started, check your email to verify", user)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	uid := c.Param("uid")

	user, err := h.authUseCase.VerifyEmail(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Email verified", user)
}

type emailLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) LoginWithEmail(c echo.Context) error {
	var req emailLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.LoginWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	if result.TwoFactorRequired {
		return response.Success(c, "2FA required", result)
	}
	return response.Success(c, "Login successful", result)
}

type phoneLoginRequest struct {
	Mobile   string `json:"mobile" validate:"required,e164"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) LoginWithPhone(c echo.Context) error {
	var req phoneLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.LoginWithPhone(c.Request().Context(), req.Mobile, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Login successful", result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	idToken, err := h.authUseCase.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Token refreshed", map[string]string{"id_token": idToken})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Logged out", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.authUseCase.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "If the email is registered, a reset link has been sent", nil)
}

func (h *AuthHandler) TwoFactorSetup(c echo.Context) error {
	uid := c.Get("uid").(string)

	setup, err := h.twoFactorUseCase.Setup(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Two-factor authentication enabled", setup)
}

type twoFactorVerifyRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Code         string `json:"code" validate:"required,len=6"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) TwoFactorVerify(c echo.Context) error {
	var req twoFactorVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	idToken, err := h.twoFactorUseCase.Verify(c.Request().Context(), req.UserID, req.Code, req.RefreshToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Login successful", map[string]string{"id_token": idToken})
}

func (h *AuthHandler) TwoFactorDisable(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.twoFactorUseCase.Disable(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Two-factor authentication disabled", nil)
}
