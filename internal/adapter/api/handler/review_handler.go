package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

type reviewRequest struct {
	Rate        float64 `json:"rate" validate:"required,min=0,max=5"`
	Title       string  `json:"title" validate:"required,oneof=bad average good 'very good' excellent"`
	Description string  `json:"description"`
}

// Add posts a review on the item in the path.
func (h *ReviewHandler) Add(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.AddReview(c.Request().Context(), uid, c.Param("id"), usecase.ReviewInput{
		Rate:        req.Rate,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Review added", review)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), uid, c.Param("id"), usecase.ReviewInput{
		Rate:        req.Rate,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Review updated", review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.reviewUseCase.DeleteReview(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Review deleted", nil)
}

// List returns a seller's reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListReviews(c.Request().Context(), c.Param("id"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Reviews retrieved", reviews, total, p.Page, p.PageSize)
}

// AverageRate recomputes and returns the rating summary for a seller, or for
// one of their items when item_id is given.
func (h *ReviewHandler) AverageRate(c echo.Context) error {
	sellerID := c.Param("id")
	itemID := c.QueryParam("item_id")

	summary, err := h.reviewUseCase.GetAverageRate(c.Request().Context(), sellerID, itemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Average rate retrieved", summary)
}
