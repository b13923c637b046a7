package pdf

import (
	"bytes"
	"fmt"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Generator renders medical reports as PDF documents
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// ReportData bundles a report with the records it references. Every
// section beyond the report itself is optional; absent data renders as
// an explanatory line rather than an empty section.
type ReportData struct {
	Report      model.Report
	PatientName string
	DoctorName  string
	Medications []model.Medication
	Vitals      []model.Vitals
	Feedback    *model.Feedback
}

// Export renders a bare report without its referenced records. It is
// the path used when only the report row is at hand.
func (g *Generator) Export(report *model.Report) ([]byte, error) {
	return g.Generate(&ReportData{Report: *report})
}

// Generate creates a PDF document from the provided data
func (g *Generator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating PDF report",
		zap.Int64("report_id", data.Report.ID),
		zap.String("report_type", data.Report.ReportType),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, data)
	g.addSummary(pdf, data.Report.Summary)
	g.addMedications(pdf, data.Medications)
	g.addVitals(pdf, data.Vitals)
	g.addFeedback(pdf, data.Feedback)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated",
		zap.Int64("report_id", data.Report.ID),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

// addTitle adds the report title and header information
func (g *Generator) addTitle(pdf *gofpdf.Fpdf, data *ReportData) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, data.Report.Title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if data.PatientName != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Patient: %s", data.PatientName), "", 1, "L", false, 0, "")
	}
	if data.DoctorName != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Doctor: %s", data.DoctorName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Type: %s", data.Report.ReportType), "", 1, "L", false, 0, "")

	if data.Report.TimePeriodStart != nil && data.Report.TimePeriodEnd != nil {
		period := fmt.Sprintf("Period: %s to %s",
			data.Report.TimePeriodStart.Format("2006-01-02"),
			data.Report.TimePeriodEnd.Format("2006-01-02"),
		)
		pdf.CellFormat(0, 8, period, "", 1, "L", false, 0, "")
	}

	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", data.Report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

// addSectionHeader adds a section header
func (g *Generator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

// addSummary adds the narrative summary section
func (g *Generator) addSummary(pdf *gofpdf.Fpdf, summary string) {
	g.addSectionHeader(pdf, "Summary")

	if summary == "" {
		pdf.CellFormat(0, 8, "No summary provided.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.MultiCell(0, 5, summary, "", "L", false)
	pdf.Ln(5)
}

// addMedications adds the medication list section
func (g *Generator) addMedications(pdf *gofpdf.Fpdf, medications []model.Medication) {
	g.addSectionHeader(pdf, "Medications")

	if len(medications) == 0 {
		pdf.CellFormat(0, 8, "No medications included in this report.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, med := range medications {
		pdf.SetFont("Arial", "B", 10)
		status := "active"
		if !med.Active {
			status = "inactive"
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", med.Name, status), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("  Dosage: %s", med.Dosage), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Frequency: %s", med.Frequency), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Start Date: %s", med.StartDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		if med.EndDate != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  End Date: %s", med.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		}
		if med.Instructions != nil && *med.Instructions != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Instructions: %s", *med.Instructions), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}

// addVitals adds the vitals readings section
func (g *Generator) addVitals(pdf *gofpdf.Fpdf, vitals []model.Vitals) {
	g.addSectionHeader(pdf, "Vitals")

	if len(vitals) == 0 {
		pdf.CellFormat(0, 8, "No vitals recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, v := range vitals {
		dateStr := v.RecordedAt.Format("2006-01-02 15:04")
		pdf.SetFont("Arial", "B", 10)
		header := dateStr
		if v.Critical {
			header = dateStr + " (CRITICAL)"
		}
		pdf.CellFormat(0, 6, header, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)

		if v.HeartRate != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Heart Rate: %d bpm", *v.HeartRate), "", 1, "L", false, 0, "")
		}
		if v.SystolicPressure != nil && v.DiastolicPressure != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Blood Pressure: %d/%d mmHg", *v.SystolicPressure, *v.DiastolicPressure), "", 1, "L", false, 0, "")
		}
		if v.Temperature != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Temperature: %.1f C", *v.Temperature), "", 1, "L", false, 0, "")
		}
		if v.OxygenSaturation != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Oxygen Saturation: %.1f%%", *v.OxygenSaturation), "", 1, "L", false, 0, "")
		}
		if v.RespiratoryRate != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Respiratory Rate: %d /min", *v.RespiratoryRate), "", 1, "L", false, 0, "")
		}
		if v.BloodSugar != nil {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Blood Sugar: %.1f mmol/L", *v.BloodSugar), "", 1, "L", false, 0, "")
		}
		if v.CriticalNotes != nil && *v.CriticalNotes != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("  Notes: %s", *v.CriticalNotes), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}
	pdf.Ln(5)
}

// addFeedback adds the visit feedback section
func (g *Generator) addFeedback(pdf *gofpdf.Fpdf, feedback *model.Feedback) {
	g.addSectionHeader(pdf, "Visit Feedback")

	if feedback == nil {
		pdf.CellFormat(0, 8, "No visit feedback included in this report.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	rows := []struct {
		label string
		value string
	}{
		{"Diagnosis", feedback.Diagnosis},
		{"Comments", feedback.Comments},
		{"Recommendations", feedback.Recommendations},
		{"Next Steps", feedback.NextSteps},
	}

	for _, row := range rows {
		if row.value == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, row.label, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, row.value, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(5)
}
