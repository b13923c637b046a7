package validation

import (
	"testing"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	violations, ok := err.(Violations)
	require.True(t, ok, "expected Violations, got %T", err)
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}
	return fields
}

func TestCheckVitals(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		req    model.VitalsRequest
		fields []string
	}{
		{
			name: "valid single measurement",
			req:  model.VitalsRequest{PatientID: 1, HeartRate: intPtr(72), RecordedAt: now},
		},
		{
			name:   "no measurements",
			req:    model.VitalsRequest{PatientID: 1, RecordedAt: now},
			fields: []string{"measurements"},
		},
		{
			name:   "missing patient",
			req:    model.VitalsRequest{HeartRate: intPtr(72), RecordedAt: now},
			fields: []string{"patient_id"},
		},
		{
			name:   "heart rate out of range",
			req:    model.VitalsRequest{PatientID: 1, HeartRate: intPtr(400), RecordedAt: now},
			fields: []string{"heart_rate"},
		},
		{
			name:   "systolic not above diastolic",
			req:    model.VitalsRequest{PatientID: 1, SystolicPressure: intPtr(80), DiastolicPressure: intPtr(90), RecordedAt: now},
			fields: []string{"systolic_pressure"},
		},
		{
			name:   "temperature out of range",
			req:    model.VitalsRequest{PatientID: 1, Temperature: floatPtr(50.0), RecordedAt: now},
			fields: []string{"temperature"},
		},
		{
			name:   "oxygen above 100",
			req:    model.VitalsRequest{PatientID: 1, OxygenSaturation: floatPtr(101.0), RecordedAt: now},
			fields: []string{"oxygen_saturation"},
		},
		{
			name:   "future recording time",
			req:    model.VitalsRequest{PatientID: 1, HeartRate: intPtr(72), RecordedAt: now.Add(time.Hour)},
			fields: []string{"recorded_at"},
		},
		{
			name: "boundary values pass",
			req: model.VitalsRequest{
				PatientID:         1,
				HeartRate:         intPtr(20),
				SystolicPressure:  intPtr(300),
				DiastolicPressure: intPtr(200),
				OxygenSaturation:  floatPtr(100.0),
				RecordedAt:        now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVitals(&tt.req)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.fields, violationFields(t, err))
		})
	}
}

func TestCheckVitalsCollectsAllViolations(t *testing.T) {
	err := CheckVitals(&model.VitalsRequest{
		HeartRate:  intPtr(1000),
		RecordedAt: time.Now().Add(24 * time.Hour),
	})

	fields := violationFields(t, err)
	assert.ElementsMatch(t, []string{"patient_id", "heart_rate", "recorded_at"}, fields)
}

func TestCheckAppointment(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	valid := model.AppointmentRequest{
		PatientID:     1,
		DoctorID:      2,
		ScheduledTime: now.Add(24 * time.Hour),
		Type:          model.AppointmentInPerson,
		Reason:        "annual checkup",
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, CheckAppointment(&valid, now))
	})

	t.Run("past time", func(t *testing.T) {
		req := valid
		req.ScheduledTime = now.Add(-time.Hour)
		assert.ElementsMatch(t, []string{"scheduled_time"}, violationFields(t, CheckAppointment(&req, now)))
	})

	t.Run("blank reason", func(t *testing.T) {
		req := valid
		req.Reason = "   "
		assert.ElementsMatch(t, []string{"reason"}, violationFields(t, CheckAppointment(&req, now)))
	})

	t.Run("unknown type", func(t *testing.T) {
		req := valid
		req.Type = "HOUSE_CALL"
		assert.ElementsMatch(t, []string{"type"}, violationFields(t, CheckAppointment(&req, now)))
	})

	t.Run("missing participants", func(t *testing.T) {
		req := valid
		req.PatientID = 0
		req.DoctorID = 0
		assert.ElementsMatch(t, []string{"patient_id", "doctor_id"}, violationFields(t, CheckAppointment(&req, now)))
	})
}

func TestCheckRegistration(t *testing.T) {
	valid := model.RegisterRequest{
		Username: "jdoe",
		Password: "longenough",
		Email:    "jdoe@example.com",
		Role:     model.RolePatient,
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, CheckRegistration(&valid))
	})

	t.Run("short password", func(t *testing.T) {
		req := valid
		req.Password = "short"
		assert.ElementsMatch(t, []string{"password"}, violationFields(t, CheckRegistration(&req)))
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.ElementsMatch(t, []string{"email"}, violationFields(t, CheckRegistration(&req)))
	})

	t.Run("unknown role", func(t *testing.T) {
		req := valid
		req.Role = "NURSE"
		assert.ElementsMatch(t, []string{"role"}, violationFields(t, CheckRegistration(&req)))
	})

	t.Run("everything wrong", func(t *testing.T) {
		req := model.RegisterRequest{}
		assert.ElementsMatch(t, []string{"username", "password", "email", "role"}, violationFields(t, CheckRegistration(&req)))
	})
}

func TestViolationsErrorMessage(t *testing.T) {
	err := Violations{
		{Field: "reason", Message: "reason is required"},
		{Field: "type", Message: "must be IN_PERSON or VIDEO_CONSULTATION"},
	}
	assert.Equal(t, "validation failed: reason: reason is required; type: must be IN_PERSON or VIDEO_CONSULTATION", err.Error())
}
