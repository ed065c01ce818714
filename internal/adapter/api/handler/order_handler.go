package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUseCase: orderUseCase}
}

type placeOrderRequest struct {
	ItemID       string `json:"item_id" validate:"required"`
	PaymentID    string `json:"payment_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1,max=10"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
	BuyerAddress string `json:"buyer_address" validate:"required"`
}

func (h *OrderHandler) Place(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.PlaceOrder(c.Request().Context(), uid, usecase.PlaceOrderInput{
		ItemID:       req.ItemID,
		PaymentID:    req.PaymentID,
		Quantity:     req.Quantity,
		Currency:     req.Currency,
		BuyerAddress: req.BuyerAddress,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Order placed", order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Order retrieved", order)
}

func (h *OrderHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), uid, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Orders retrieved", orders, total, p.Page, p.PageSize)
}

func (h *OrderHandler) Count(c echo.Context) error {
	uid := c.Get("uid").(string)

	count, err := h.orderUseCase.CountOrders(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Order count retrieved", map[string]int64{"count": count})
}

type updateOrderRequest struct {
	Quantity     int    `json:"quantity" validate:"omitempty,min=1,max=10"`
	BuyerAddress string `json:"buyer_address"`
}

func (h *OrderHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateOrder(c.Request().Context(), uid, c.Param("id"), usecase.UpdateOrderInput{
		Quantity:     req.Quantity,
		BuyerAddress: req.BuyerAddress,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Order updated", order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Order status updated", order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.orderUseCase.DeleteOrder(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Order deleted", nil)
}

type verifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=8,alphanum"`
}

func (h *OrderHandler) VerifySecretCode(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.VerifySecretCode(c.Request().Context(), uid, c.Param("id"), req.Code)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Pickup code verified", order)
}
