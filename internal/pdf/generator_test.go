package pdf

import (
	"testing"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleReport() model.Report {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return model.Report{
		ID:              42,
		Title:           "Monthly Summary",
		GeneratedAt:     time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC),
		PatientID:       7,
		Summary:         "Patient is recovering well.",
		ReportType:      "MONTHLY",
		TimePeriodStart: &start,
		TimePeriodEnd:   &end,
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	hr := 72
	notes := "take with food"
	data := &ReportData{
		Report:      sampleReport(),
		PatientName: "Jane Doe",
		DoctorName:  "Gregory House",
		Medications: []model.Medication{
			{
				ID:           1,
				PatientID:    7,
				Name:         "Lisinopril",
				Dosage:       "10mg",
				Frequency:    "once daily",
				StartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
				Instructions: &notes,
				Active:       true,
			},
		},
		Vitals: []model.Vitals{
			{ID: 2, PatientID: 7, HeartRate: &hr, RecordedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)},
		},
		Feedback: &model.Feedback{
			ID:              3,
			Diagnosis:       "Hypertension, stage 1",
			Comments:        "Responding to treatment.",
			Recommendations: "Continue current medication.",
			NextSteps:       "Follow up in four weeks.",
		},
	}

	out, err := g.Generate(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "output should be a PDF document")
}

func TestGenerateWithEmptySections(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	report := sampleReport()
	report.Summary = ""

	out, err := g.Generate(&ReportData{Report: report})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestExportRendersBareReport(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	report := sampleReport()
	out, err := g.Export(&report)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
