// Package validation holds the pre-submit form checks. They are pure
// functions over request payloads; failures never reach a repository.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
)

// Violation is a single field-level problem in a submitted form
type Violation struct {
	Field   string
	Message string
}

// Violations is the error returned when a payload fails validation
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = fmt.Sprintf("%s: %s", violation.Field, violation.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Physiological bounds for vitals uploads. Values outside these ranges
// are almost certainly entry mistakes, not emergencies; the backend owns
// clinical criticality assessment.
const (
	minHeartRate       = 20
	maxHeartRate       = 300
	minSystolic        = 50
	maxSystolic        = 300
	minDiastolic       = 30
	maxDiastolic       = 200
	minTemperature     = 30.0
	maxTemperature     = 45.0
	minOxygen          = 50.0
	maxOxygen          = 100.0
	minRespiratoryRate = 5
	maxRespiratoryRate = 80
	minBloodSugar      = 1.0
	maxBloodSugar      = 50.0
)

// CheckVitals validates a vitals upload. A nil return means the payload
// may be submitted.
func CheckVitals(req *model.VitalsRequest) error {
	var violations Violations

	if req.PatientID <= 0 {
		violations = append(violations, Violation{"patient_id", "patient id is required"})
	}

	none := req.HeartRate == nil && req.SystolicPressure == nil && req.DiastolicPressure == nil &&
		req.Temperature == nil && req.OxygenSaturation == nil && req.RespiratoryRate == nil &&
		req.BloodSugar == nil
	if none {
		violations = append(violations, Violation{"measurements", "at least one measurement is required"})
	}

	if req.HeartRate != nil && (*req.HeartRate < minHeartRate || *req.HeartRate > maxHeartRate) {
		violations = append(violations, Violation{"heart_rate", fmt.Sprintf("must be between %d and %d", minHeartRate, maxHeartRate)})
	}
	if req.SystolicPressure != nil && (*req.SystolicPressure < minSystolic || *req.SystolicPressure > maxSystolic) {
		violations = append(violations, Violation{"systolic_pressure", fmt.Sprintf("must be between %d and %d", minSystolic, maxSystolic)})
	}
	if req.DiastolicPressure != nil && (*req.DiastolicPressure < minDiastolic || *req.DiastolicPressure > maxDiastolic) {
		violations = append(violations, Violation{"diastolic_pressure", fmt.Sprintf("must be between %d and %d", minDiastolic, maxDiastolic)})
	}
	if req.SystolicPressure != nil && req.DiastolicPressure != nil && *req.SystolicPressure <= *req.DiastolicPressure {
		violations = append(violations, Violation{"systolic_pressure", "must be greater than diastolic pressure"})
	}
	if req.Temperature != nil && (*req.Temperature < minTemperature || *req.Temperature > maxTemperature) {
		violations = append(violations, Violation{"temperature", fmt.Sprintf("must be between %.1f and %.1f", minTemperature, maxTemperature)})
	}
	if req.OxygenSaturation != nil && (*req.OxygenSaturation < minOxygen || *req.OxygenSaturation > maxOxygen) {
		violations = append(violations, Violation{"oxygen_saturation", fmt.Sprintf("must be between %.1f and %.1f", minOxygen, maxOxygen)})
	}
	if req.RespiratoryRate != nil && (*req.RespiratoryRate < minRespiratoryRate || *req.RespiratoryRate > maxRespiratoryRate) {
		violations = append(violations, Violation{"respiratory_rate", fmt.Sprintf("must be between %d and %d", minRespiratoryRate, maxRespiratoryRate)})
	}
	if req.BloodSugar != nil && (*req.BloodSugar < minBloodSugar || *req.BloodSugar > maxBloodSugar) {
		violations = append(violations, Violation{"blood_sugar", fmt.Sprintf("must be between %.1f and %.1f", minBloodSugar, maxBloodSugar)})
	}
	if req.RecordedAt.After(time.Now().Add(time.Minute)) {
		violations = append(violations, Violation{"recorded_at", "cannot be in the future"})
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}

// CheckAppointment validates a booking request
func CheckAppointment(req *model.AppointmentRequest, now time.Time) error {
	var violations Violations

	if req.PatientID <= 0 {
		violations = append(violations, Violation{"patient_id", "patient id is required"})
	}
	if req.DoctorID <= 0 {
		violations = append(violations, Violation{"doctor_id", "doctor id is required"})
	}
	if req.ScheduledTime.Before(now) {
		violations = append(violations, Violation{"scheduled_time", "must be in the future"})
	}
	if strings.TrimSpace(req.Reason) == "" {
		violations = append(violations, Violation{"reason", "reason is required"})
	}
	if req.Type != model.AppointmentInPerson && req.Type != model.AppointmentVideo {
		violations = append(violations, Violation{"type", "must be IN_PERSON or VIDEO_CONSULTATION"})
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}

// CheckRegistration validates a new-account form
func CheckRegistration(req *model.RegisterRequest) error {
	var violations Violations

	if strings.TrimSpace(req.Username) == "" {
		violations = append(violations, Violation{"username", "username is required"})
	}
	if len(req.Password) < 8 {
		violations = append(violations, Violation{"password", "must be at least 8 characters"})
	}
	if !strings.Contains(req.Email, "@") {
		violations = append(violations, Violation{"email", "a valid email is required"})
	}
	switch req.Role {
	case model.RolePatient, model.RoleDoctor, model.RoleAdmin:
	default:
		violations = append(violations, Violation{"role", "must be PATIENT, DOCTOR or ADMIN"})
	}

	if len(violations) > 0 {
		return violations
	}
	return nil
}
