package repository

import (
	"context"

	"github.com/carelink/carelink-go/internal/api"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// ReportRepository manages generated health reports
type ReportRepository struct {
	client *api.Client
	logger *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(client *api.Client, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		client: client,
		logger: logger,
	}
}

// Generate asks the backend to compose a report over a time period
func (r *ReportRepository) Generate(ctx context.Context, req *model.ReportRequest) (*model.Report, error) {
	return r.client.GenerateReport(ctx, req)
}

// Get retrieves a report by id
func (r *ReportRepository) Get(ctx context.Context, reportID int64) (*model.Report, error) {
	return r.client.GetReport(ctx, reportID)
}

// ListByPatient retrieves all reports generated for a patient
func (r *ReportRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Report, error) {
	return r.client.ListReportsByPatient(ctx, patientID)
}

// Delete removes a generated report
func (r *ReportRepository) Delete(ctx context.Context, reportID int64) error {
	return r.client.DeleteReport(ctx, reportID)
}
