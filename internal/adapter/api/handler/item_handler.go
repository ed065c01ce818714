package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{itemUseCase: itemUseCase}
}

type itemRequest struct {
	Title             string  `json:"title" validate:"required,min=3"`
	Description       string  `json:"description"`
	Category          string  `json:"category" validate:"required"`
	SubCategory       string  `json:"sub_category"`
	Brand             string  `json:"brand"`
	Price             float64 `json:"price" validate:"required,min=0"`
	Discount          float64 `json:"discount" validate:"min=0,max=99"`
	AvailableQuantity int     `json:"available_quantity" validate:"min=0"`
	AllowQuantity     int     `json:"allow_quantity" validate:"min=1,max=10"`
	AllowNegotiation  bool    `json:"allow_negotiation"`
	Location          string  `json:"location"`
}

func (h *ItemHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUseCase.CreateItem(c.Request().Context(), uid, itemInput(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Item created", item)
}

func itemInput(req itemRequest) usecase.ItemInput {
	return usecase.ItemInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		SubCategory:       req.SubCategory,
		Brand:             req.Brand,
		Price:             req.Price,
		Discount:          req.Discount,
		AvailableQuantity: req.AvailableQuantity,
		AllowQuantity:     req.AllowQuantity,
		AllowNegotiation:  req.AllowNegotiation,
		Location:          req.Location,
	}
}

func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Item retrieved", item)
}

func (h *ItemHandler) List(c echo.Context) error {
	p := utils.GetPaginationParams(c)
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)

	items, total, err := h.itemUseCase.ListItems(c.Request().Context(), usecase.ListItemsInput{
		SellerID: c.QueryParam("seller_id"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     p.Page,
		Limit:    p.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Items retrieved", items, total, p.Page, p.PageSize)
}

func (h *ItemHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemUseCase.UpdateItem(c.Request().Context(), uid, c.Param("id"), itemInput(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Item updated", item)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.itemUseCase.DeleteItem(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Item deleted", nil)
}

type moderateRequest struct {
	Status string `json:"status" validate:"required,oneof=UNDER_REVIEW PUBLISHED SOLD REJECT"`
}

func (h *ItemHandler) Moderate(c echo.Context) error {
	var req moderateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUseCase.Moderate(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Item status updated", item)
}
