package model

import "time"

// Creation and update payloads. These differ from the entities: the
// backend assigns ids and timestamps, so requests never carry them.

// RegisterRequest creates a new user account
type RegisterRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Gender    string  `json:"gender"`
	DOB       *string `json:"dob,omitempty"`
	Address   string  `json:"address"`
	Role      Role    `json:"role"`
}

// LoginRequest authenticates an existing user
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AppointmentRequest books a new appointment
type AppointmentRequest struct {
	PatientID     int64           `json:"patient_id"`
	DoctorID      int64           `json:"doctor_id"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	Type          AppointmentType `json:"type"`
	Reason        string          `json:"reason"`
}

// AppointmentStatusUpdate changes the lifecycle status of an appointment,
// optionally attaching notes or a video meeting link
type AppointmentStatusUpdate struct {
	Status      AppointmentStatus `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	MeetingLink *string           `json:"meeting_link,omitempty"`
}

// MedicationRequest prescribes a new medication
type MedicationRequest struct {
	PatientID     int64      `json:"patient_id"`
	AppointmentID *int64     `json:"appointment_id,omitempty"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Frequency     string     `json:"frequency"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Instructions  *string    `json:"instructions,omitempty"`
}

// VitalsRequest uploads a new set of measurements
type VitalsRequest struct {
	PatientID         int64     `json:"patient_id"`
	HeartRate         *int      `json:"heart_rate,omitempty"`
	SystolicPressure  *int      `json:"systolic_pressure,omitempty"`
	DiastolicPressure *int      `json:"diastolic_pressure,omitempty"`
	Temperature       *float64  `json:"temperature,omitempty"`
	OxygenSaturation  *float64  `json:"oxygen_saturation,omitempty"`
	RespiratoryRate   *int      `json:"respiratory_rate,omitempty"`
	BloodSugar        *float64  `json:"blood_sugar,omitempty"`
	RecordedAt        time.Time `json:"recorded_at"`
}

// FeedbackRequest records the doctor's post-visit summary
type FeedbackRequest struct {
	DoctorID        int64  `json:"doctor_id"`
	PatientID       int64  `json:"patient_id"`
	AppointmentID   int64  `json:"appointment_id"`
	Comments        string `json:"comments"`
	Diagnosis       string `json:"diagnosis"`
	Recommendations string `json:"recommendations"`
	NextSteps       string `json:"next_steps"`
}

// ReportRequest asks the backend to compose a report over a time period
type ReportRequest struct {
	PatientID       int64      `json:"patient_id"`
	DoctorID        *int64     `json:"doctor_id,omitempty"`
	Title           string     `json:"title"`
	ReportType      string     `json:"report_type"`
	TimePeriodStart *time.Time `json:"time_period_start,omitempty"`
	TimePeriodEnd   *time.Time `json:"time_period_end,omitempty"`
}
