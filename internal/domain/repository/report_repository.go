package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	GetByReporterAndTarget(ctx context.Context, reporterID, targetID string) (*entity.Report, error)
	Update(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id, reporterID string) (bool, error)
	ListByReporter(ctx context.Context, reporterID string, limit, offset int) ([]*entity.Report, int64, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error)
	CountByReporter(ctx context.Context, reporterID string) (int64, error)
}
