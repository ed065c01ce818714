package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase}
}

type createReportRequest struct {
	TargetID   string `json:"target_id" validate:"required"`
	ReportType string `json:"report_type" validate:"required,oneof=item conversation"`
	Subject    string `json:"subject" validate:"required,min=3"`
	Reason     string `json:"reason" validate:"required,min=3"`
}

func (h *ReportHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.CreateReport(c.Request().Context(), uid, usecase.CreateReportInput{
		TargetID:   req.TargetID,
		ReportType: req.ReportType,
		Subject:    req.Subject,
		Reason:     req.Reason,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Report filed", report)
}

func (h *ReportHandler) ListOwn(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListOwn(c.Request().Context(), uid, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Reports retrieved", reports, total, p.Page, p.PageSize)
}

func (h *ReportHandler) ListAll(c echo.Context) error {
	p := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListAll(c.Request().Context(), c.QueryParam("status"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Reports retrieved", reports, total, p.Page, p.PageSize)
}

func (h *ReportHandler) Get(c echo.Context) error {
	report, err := h.reportUseCase.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Report retrieved", report)
}

type resolveReportRequest struct {
	Status   string `json:"status" validate:"required,oneof=REVIEWED RESOLVED"`
	Feedback string `json:"feedback"`
}

func (h *ReportHandler) Resolve(c echo.Context) error {
	var req resolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.Resolve(c.Request().Context(), c.Param("id"), req.Status, req.Feedback)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Report updated", report)
}

func (h *ReportHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.reportUseCase.DeleteReport(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Report deleted", nil)
}
