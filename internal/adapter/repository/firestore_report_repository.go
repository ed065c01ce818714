package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

type firestoreReportRepository struct {
	client *firestore.Client
}

func NewFirestoreReportRepository(client *firestore.Client) repository.ReportRepository {
	return &firestoreReportRepository{
		client: client,
	}
}

func (r *firestoreReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.client.Collection("reports").Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}
	return nil
}

func (r *firestoreReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	doc, err := r.client.Collection("reports").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}
	return &report, nil
}

func (r *firestoreReportRepository) GetByReporterAndTarget(ctx context.Context, reporterID, targetID string) (*entity.Report, error) {
	iter := r.client.Collection("reports").
		Where("reporterId", "==", reporterID).
		Where("targetId", "==", targetID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to query report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}
	return &report, nil
}

func (r *firestoreReportRepository) Update(ctx context.Context, report *entity.Report) error {
	report.UpdatedAt = time.Now()

	_, err := r.client.Collection("reports").Doc(report.ID).Set(ctx, report)
	if err != nil {
		return errors.Internal("Failed to update report", err)
	}
	return nil
}

func (r *firestoreReportRepository) Delete(ctx context.Context, id, reporterID string) (bool, error) {
	report, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	if report.ReporterID != reporterID {
		return false, nil
	}

	if _, err := r.client.Collection("reports").Doc(id).Delete(ctx); err != nil {
		return false, errors.Internal("Failed to delete report", err)
	}
	return true, nil
}

func (r *firestoreReportRepository) ListByReporter(ctx context.Context, reporterID string, limit, offset int) ([]*entity.Report, int64, error) {
	query := r.client.Collection("reports").
		Where("reporterId", "==", reporterID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreReportRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Report, int64, error) {
	query := r.client.Collection("reports").Query
	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreReportRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Report, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reports", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reports []*entity.Report

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reports", err)
		}

		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, 0, errors.Internal("Failed to parse report data", err)
		}
		reports = append(reports, &report)
	}

	return reports, total, nil
}

func (r *firestoreReportRepository) CountByReporter(ctx context.Context, reporterID string) (int64, error) {
	docs, err := r.client.Collection("reports").
		Where("reporterId", "==", reporterID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count reports", err)
	}
	return int64(len(docs)), nil
}
