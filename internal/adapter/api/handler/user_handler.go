package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

func (h *UserHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Profile retrieved", user)
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userUseCase.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User retrieved", user)
}

func (h *UserHandler) List(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), c.QueryParam("role"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Users retrieved", users, total, p.Page, p.PageSize)
}

func (h *UserHandler) Count(c echo.Context) error {
	count, err := h.userUseCase.CountUsers(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User count retrieved", map[string]int64{"count": count})
}

type updateProfileRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female"`
	Description  string `json:"description"`
	CoverImage   string `json:"cover_image"`
	ProfileImage string `json:"profile_image"`
	Business     *bool  `json:"business"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name:         req.Name,
		Gender:       req.Gender,
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		ProfileImage: req.ProfileImage,
		Business:     req.Business,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Profile updated", user)
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN MANAGER CALL_CENTER"`
}

func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Role updated", user)
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	if err := h.userUseCase.DeactivateUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User deactivated", nil)
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "User deleted", nil)
}
