package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type CouponHandler struct {
	couponUseCase *usecase.CouponUseCase
}

func NewCouponHandler(couponUseCase *usecase.CouponUseCase) *CouponHandler {
	return &CouponHandler{couponUseCase: couponUseCase}
}

type createCouponRequest struct {
	Discount  int       `json:"discount" validate:"required,min=1,max=100"`
	MaxUses   int       `json:"max_uses" validate:"required,min=1"`
	ItemID    string    `json:"item_id"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

func (h *CouponHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.couponUseCase.CreateCoupon(c.Request().Context(), uid, usecase.CreateCouponInput{
		Discount:  req.Discount,
		MaxUses:   req.MaxUses,
		ItemID:    req.ItemID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Coupon created", coupon)
}

func (h *CouponHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	coupon, err := h.couponUseCase.GetCoupon(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Coupon retrieved", coupon)
}

func (h *CouponHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	coupons, total, err := h.couponUseCase.ListCoupons(c.Request().Context(), uid, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Coupons retrieved", coupons, total, p.Page, p.PageSize)
}

type updateCouponRequest struct {
	Discount  int       `json:"discount" validate:"omitempty,min=1,max=100"`
	MaxUses   int       `json:"max_uses" validate:"omitempty,min=1"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *CouponHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.couponUseCase.UpdateCoupon(c.Request().Context(), uid, c.Param("id"), usecase.UpdateCouponInput{
		Discount:  req.Discount,
		MaxUses:   req.MaxUses,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Coupon updated", coupon)
}

func (h *CouponHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.couponUseCase.DeleteCoupon(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Coupon deleted", nil)
}

type applyCouponRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Code    string `json:"code" validate:"required,len=9,alphanum"`
}

func (h *CouponHandler) Apply(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req applyCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.couponUseCase.ApplyCoupon(c.Request().Context(), uid, req.OrderID, req.Code)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Coupon applied", order)
}
