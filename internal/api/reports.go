package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carelink/carelink-go/pkg/model"
)

// GenerateReport asks the backend to compose a report from the patient's
// appointments, vitals, medications and feedback over the requested period
func (c *Client) GenerateReport(ctx context.Context, req *model.ReportRequest) (*model.Report, error) {
	var report model.Report
	if err := c.do(ctx, http.MethodPost, "/api/v1/reports/generate", req, &report); err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return &report, nil
}

// GetReport retrieves a report by id
func (c *Client) GetReport(ctx context.Context, reportID int64) (*model.Report, error) {
	var report model.Report
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reports/%d", reportID), nil, &report); err != nil {
		return nil, fmt.Errorf("failed to get report %d: %w", reportID, err)
	}
	return &report, nil
}

// ListReportsByPatient retrieves all reports generated for a patient
func (c *Client) ListReportsByPatient(ctx context.Context, patientID int64) ([]model.Report, error) {
	var reports []model.Report
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/reports", patientID), nil, &reports); err != nil {
		return nil, fmt.Errorf("failed to list reports for patient %d: %w", patientID, err)
	}
	return reports, nil
}

// DeleteReport removes a generated report
func (c *Client) DeleteReport(ctx context.Context, reportID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/reports/%d", reportID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete report %d: %w", reportID, err)
	}
	return nil
}
