package usecase

import (
	"context"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

type CreateReportInput struct {
	TargetID   string
	ReportType string
	Subject    string
	Reason     string
}

// CreateReport files one report per reporter per target.
func (uc *ReportUseCase) CreateReport(ctx context.Context, reporterID string, input CreateReportInput) (*entity.Report, error) {
	if input.ReportType != entity.ReportTypeItem && input.ReportType != entity.ReportTypeConversation {
		return nil, errors.BadRequest("Invalid report type", nil)
	}

	if _, err := uc.reportRepo.GetByReporterAndTarget(ctx, reporterID, input.TargetID); err == nil {
		return nil, errors.Rejection("You have already reported this target")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	report := &entity.Report{
		ReporterID: reporterID,
		TargetID:   input.TargetID,
		ReportType: input.ReportType,
		Subject:    input.Subject,
		Reason:     input.Reason,
		Status:     entity.ReportStatusPending,
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (uc *ReportUseCase) GetReport(ctx context.Context, id string) (*entity.Report, error) {
	return uc.reportRepo.GetByID(ctx, id)
}

func (uc *ReportUseCase) ListOwn(ctx context.Context, reporterID string, page, limit int) ([]*entity.Report, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.reportRepo.ListByReporter(ctx, reporterID, p.PageSize, p.Offset)
}

// ListAll is the staff view, optionally narrowed by status.
func (uc *ReportUseCase) ListAll(ctx context.Context, status string, page, limit int) ([]*entity.Report, int64, error) {
	if status != "" &&
		status != entity.ReportStatusPending &&
		status != entity.ReportStatusReviewed &&
		status != entity.ReportStatusResolved {
		return nil, 0, errors.BadRequest("Invalid report status", nil)
	}

	p := utils.NewPaginationParams(page, limit)
	return uc.reportRepo.ListByStatus(ctx, status, p.PageSize, p.Offset)
}

// Resolve is the staff action: moves the report along its lifecycle and can
// attach moderator feedback.
func (uc *ReportUseCase) Resolve(ctx context.Context, reportID, status, feedback string) (*entity.Report, error) {
	if status != entity.ReportStatusReviewed && status != entity.ReportStatusResolved {
		return nil, errors.BadRequest("Invalid report status", nil)
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	report.Status = status
	if feedback != "" {
		report.Feedback = feedback
	}

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (uc *ReportUseCase) DeleteReport(ctx context.Context, reporterID, reportID string) error {
	deleted, err := uc.reportRepo.Delete(ctx, reportID, reporterID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound("Report", nil)
	}
	return nil
}
