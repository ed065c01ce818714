package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/errors"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type FollowHandler struct {
	followUseCase *usecase.FollowUseCase
}

func NewFollowHandler(followUseCase *usecase.FollowUseCase) *FollowHandler {
	return &FollowHandler{followUseCase: followUseCase}
}

type followRequest struct {
	FollowingID string `json:"following_id" validate:"required"`
}

func (h *FollowHandler) Follow(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	follow, err := h.followUseCase.Follow(c.Request().Context(), uid, req.FollowingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Now following", follow)
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	uid := c.Get("uid").(string)

	side, err := sideParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.followUseCase.Unfollow(c.Request().Context(), uid, c.Param("id"), side); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Unfollowed", nil)
}

func (h *FollowHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	side, err := sideParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	follows, total, err := h.followUseCase.List(c.Request().Context(), uid, side, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Follows retrieved", follows, total, p.Page, p.PageSize)
}

func (h *FollowHandler) Search(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	side, err := sideParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	follows, total, err := h.followUseCase.Search(
		c.Request().Context(), uid, side, c.QueryParam("name"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Follows retrieved", follows, total, p.Page, p.PageSize)
}

func (h *FollowHandler) Count(c echo.Context) error {
	uid := c.Get("uid").(string)

	side, err := sideParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	count, err := h.followUseCase.Count(c.Request().Context(), uid, side)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Follow count retrieved", map[string]int64{"count": count})
}

// sideParam reads which end of the edge the caller means: the people they
// follow ("following", default) or the people following them ("follower").
func sideParam(c echo.Context) (string, error) {
	side := c.QueryParam("side")
	switch side {
	case "":
		return "following", nil
	case "follower", "following":
		return side, nil
	default:
		return "", errors.BadRequest("side must be follower or following", nil)
	}
}
