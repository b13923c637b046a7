package model

import "time"

// Role identifies what kind of actor a user account represents
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// User is the root identity entity; every other entity's owner fields
// reference a user id
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	DOB       *string   `json:"dob,omitempty"`
	Address   string    `json:"address"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name used in conversation lists
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PatientDetail holds the medical profile attached 1:1 to a patient user
type PatientDetail struct {
	UserID         int64    `json:"user_id"`
	BloodGroup     string   `json:"blood_group"`
	Allergies      []string `json:"allergies,omitempty"`
	MedicalHistory []string `json:"medical_history,omitempty"`
}

// DoctorDetail holds the professional profile attached 1:1 to a doctor user
type DoctorDetail struct {
	UserID                int64   `json:"user_id"`
	Specialization        string  `json:"specialization"`
	LicenseNumber         string  `json:"license_number"`
	Qualification         string  `json:"qualification"`
	ExperienceYears       int     `json:"experience_years"`
	ConsultationFee       float64 `json:"consultation_fee"`
	AvailableForEmergency bool    `json:"available_for_emergency"`
}

// AppointmentStatus tracks an appointment through its approval lifecycle
type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "REQUESTED"
	AppointmentApproved  AppointmentStatus = "APPROVED"
	AppointmentDeclined  AppointmentStatus = "DECLINED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentType distinguishes in-person visits from video consultations
type AppointmentType string

const (
	AppointmentInPerson AppointmentType = "IN_PERSON"
	AppointmentVideo    AppointmentType = "VIDEO_CONSULTATION"
)

// Appointment represents a booked or requested visit between a patient and a doctor
type Appointment struct {
	ID            int64             `json:"id"`
	PatientID     int64             `json:"patient_id"`
	DoctorID      int64             `json:"doctor_id"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Status        AppointmentStatus `json:"status"`
	Type          AppointmentType   `json:"type"`
	Reason        string            `json:"reason"`
	Notes         *string           `json:"notes,omitempty"`
	MeetingLink   *string           `json:"meeting_link,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Medication represents a prescription record. Active=false is terminal:
// once a medication is deactivated it is never flipped back.
type Medication struct {
	ID            int64      `json:"id"`
	PatientID     int64      `json:"patient_id"`
	AppointmentID *int64     `json:"appointment_id,omitempty"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	Frequency     string     `json:"frequency"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Instructions  *string    `json:"instructions,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Vitals is a single set of measurements uploaded by or for a patient.
// All measurements are optional; a record may carry any subset.
type Vitals struct {
	ID                int64     `json:"id"`
	PatientID         int64     `json:"patient_id"`
	HeartRate         *int      `json:"heart_rate,omitempty"`
	SystolicPressure  *int      `json:"systolic_pressure,omitempty"`
	DiastolicPressure *int      `json:"diastolic_pressure,omitempty"`
	Temperature       *float64  `json:"temperature,omitempty"`
	OxygenSaturation  *float64  `json:"oxygen_saturation,omitempty"`
	RespiratoryRate   *int      `json:"respiratory_rate,omitempty"`
	BloodSugar        *float64  `json:"blood_sugar,omitempty"`
	RecordedAt        time.Time `json:"recorded_at"`
	Critical          bool      `json:"critical"`
	CriticalNotes     *string   `json:"critical_notes,omitempty"`
	AlertSent         bool      `json:"alert_sent"`
}

// Feedback is the doctor's post-visit summary. At most one feedback
// record exists per appointment.
type Feedback struct {
	ID              int64     `json:"id"`
	DoctorID        int64     `json:"doctor_id"`
	PatientID       int64     `json:"patient_id"`
	AppointmentID   int64     `json:"appointment_id"`
	Comments        string    `json:"comments"`
	Diagnosis       string    `json:"diagnosis"`
	Recommendations string    `json:"recommendations"`
	NextSteps       string    `json:"next_steps"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Report is a read-mostly aggregation composed from the other entities
// at generation time
type Report struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	GeneratedAt     time.Time  `json:"generated_at"`
	PatientID       int64      `json:"patient_id"`
	DoctorID        *int64     `json:"doctor_id,omitempty"`
	Summary         string     `json:"summary"`
	ReportType      string     `json:"report_type"`
	AppointmentID   *int64     `json:"appointment_id,omitempty"`
	VitalsID        *int64     `json:"vitals_id,omitempty"`
	FeedbackID      *int64     `json:"feedback_id,omitempty"`
	MedicationIDs   []int64    `json:"medication_ids,omitempty"`
	FilePath        *string    `json:"file_path,omitempty"`
	TimePeriodStart *time.Time `json:"time_period_start,omitempty"`
	TimePeriodEnd   *time.Time `json:"time_period_end,omitempty"`
}

// Message is a chat message between two users. Unlike the other entities
// it is stored locally; the device is the authoritative store.
type Message struct {
	ID         string    `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"is_read"`
	Attachment *string   `json:"attachment,omitempty"`

	// Denormalized display names resolved from the local users table,
	// not persisted with the message row.
	SenderName   string `json:"sender_name,omitempty"`
	ReceiverName string `json:"receiver_name,omitempty"`
}

// ConversationSummary is one row of the chat overview screen: the other
// participant, the most recent message exchanged with them and how many
// of their messages are still unread
type ConversationSummary struct {
	PartnerID       int64     `json:"partner_id"`
	PartnerName     string    `json:"partner_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// SessionUser is the denormalized snapshot of the signed-in user persisted
// across process restarts
type SessionUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
