package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// ReportExporter renders a report into a shareable document
type ReportExporter interface {
	Export(report *model.Report) ([]byte, error)
}

// ReportState holds the medical-report slots
type ReportState struct {
	container

	List     *Slot[[]model.Report]
	Detail   *Slot[model.Report]
	Generate *Slot[model.Report]
	Export   *Slot[string]

	repo      ReportRepo
	exporter  ReportExporter
	exportDir string
}

// NewReportState creates the report container. exportDir is where
// exported documents land; exporter may be nil to disable exporting.
func NewReportState(repo ReportRepo, exporter ReportExporter, exportDir string, timeout time.Duration, logger *zap.Logger) *ReportState {
	return &ReportState{
		container: newContainer(timeout, logger),
		List:      NewSlot[[]model.Report](),
		Detail:    NewSlot[model.Report](),
		Generate:  NewSlot[model.Report](),
		Export:    NewSlot[string](),
		repo:      repo,
		exporter:  exporter,
		exportDir: exportDir,
	}
}

// FetchForPatient loads a patient's reports
func (s *ReportState) FetchForPatient(patientID int64) {
	s.List.setLoading()
	s.run(func(ctx context.Context) {
		reports, err := s.repo.ListByPatient(ctx, patientID)
		if err != nil {
			s.List.fail(err)
			return
		}
		s.List.succeed(reports)
	})
}

// FetchDetail loads one report into the Detail slot
func (s *ReportState) FetchDetail(reportID int64) {
	s.Detail.setLoading()
	s.run(func(ctx context.Context) {
		report, err := s.repo.Get(ctx, reportID)
		if err != nil {
			s.Detail.fail(err)
			return
		}
		s.Detail.succeed(*report)
	})
}

// Request asks the backend to assemble a new report over the given
// period. The Detail slot follows on success.
func (s *ReportState) Request(req *model.ReportRequest) {
	s.Generate.setLoading()
	s.run(func(ctx context.Context) {
		report, err := s.repo.Generate(ctx, req)
		if err != nil {
			s.Generate.fail(err)
			return
		}
		s.Generate.succeed(*report)
		s.Detail.succeed(*report)
	})
}

// ExportToFile renders the report as a PDF on disk and resolves the
// Export slot to the written path
func (s *ReportState) ExportToFile(report *model.Report) {
	s.Export.setLoading()

	if s.exporter == nil {
		s.Export.fail(fmt.Errorf("report export is not configured"))
		return
	}

	s.run(func(ctx context.Context) {
		data, err := s.exporter.Export(report)
		if err != nil {
			s.Export.fail(err)
			return
		}

		if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
			s.Export.fail(fmt.Errorf("failed to create export directory: %w", err))
			return
		}

		path := filepath.Join(s.exportDir, fmt.Sprintf("report-%d.pdf", report.ID))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			s.Export.fail(fmt.Errorf("failed to write report file: %w", err))
			return
		}

		s.logger.Info("exported report",
			zap.Int64("report_id", report.ID),
			zap.String("path", path),
			zap.Int("size_bytes", len(data)),
		)
		s.Export.succeed(path)
	})
}
