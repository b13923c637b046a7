package state

import (
	"context"

	"github.com/carelink/carelink-go/pkg/model"
)

// Consumer-side views of the repository layer. Containers depend on
// these rather than on concrete repositories so tests can substitute
// controlled fakes; the types in internal/repository satisfy them.

// UserRepo is what the user container needs
type UserRepo interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
}

// PatientRepo is what the patient container needs
type PatientRepo interface {
	GetDetail(ctx context.Context, userID int64) (*model.PatientDetail, error)
	SaveDetail(ctx context.Context, detail *model.PatientDetail) (*model.PatientDetail, error)
	List(ctx context.Context) ([]model.User, error)
}

// DoctorRepo is what the doctor container needs
type DoctorRepo interface {
	GetDetail(ctx context.Context, userID int64) (*model.DoctorDetail, error)
	SaveDetail(ctx context.Context, detail *model.DoctorDetail) (*model.DoctorDetail, error)
	List(ctx context.Context) ([]model.User, error)
}

// AdminRepo is what the admin container needs
type AdminRepo interface {
	ListPatients(ctx context.Context) ([]model.User, error)
	ListDoctors(ctx context.Context) ([]model.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

// AppointmentRepo is what the appointment container needs
type AppointmentRepo interface {
	Create(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, appointmentID int64) (*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID int64, update *model.AppointmentStatusUpdate) (*model.Appointment, error)
}

// MedicationRepo is what the medication container needs
type MedicationRepo interface {
	Create(ctx context.Context, req *model.MedicationRequest) (*model.Medication, error)
	Get(ctx context.Context, medicationID int64) (*model.Medication, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Medication, error)
	Deactivate(ctx context.Context, medicationID int64) (*model.Medication, error)
}

// VitalsRepo is what the vitals container needs
type VitalsRepo interface {
	Create(ctx context.Context, req *model.VitalsRequest) (*model.Vitals, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Vitals, error)
	Latest(ctx context.Context, patientID int64) (*model.Vitals, error)
}

// FeedbackRepo is what the feedback container needs
type FeedbackRepo interface {
	Create(ctx context.Context, req *model.FeedbackRequest) (*model.Feedback, error)
	GetByAppointment(ctx context.Context, appointmentID int64) (*model.Feedback, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Feedback, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]model.Feedback, error)
}

// ReportRepo is what the report container needs
type ReportRepo interface {
	Generate(ctx context.Context, req *model.ReportRequest) (*model.Report, error)
	Get(ctx context.Context, reportID int64) (*model.Report, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Report, error)
}

// MessageRepo is what the message container needs
type MessageRepo interface {
	Send(ctx context.Context, senderID, receiverID int64, content string, attachment *string) (*model.Message, error)
	Conversation(ctx context.Context, userA, userB int64) ([]model.Message, error)
	Conversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, receiverID, senderID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// SessionStore is the durable record of the signed-in user
type SessionStore interface {
	Save(user *model.SessionUser) error
	Load() (*model.SessionUser, error)
	Clear() error
}

// UserCache mirrors fetched identities into the local users table so
// the message store can resolve display names
type UserCache interface {
	Upsert(ctx context.Context, user *model.User) error
}

// EntityCache mirrors fetched records into the local tables so screens
// keep rendering between refreshes. Mirroring is best effort: a cache
// failure never fails the triggering fetch.
type EntityCache interface {
	UpsertAppointment(ctx context.Context, appt *model.Appointment) error
	DeleteAppointment(ctx context.Context, appointmentID int64) error
	UpsertMedication(ctx context.Context, med *model.Medication) error
	UpsertVitals(ctx context.Context, v *model.Vitals) error
	UpsertFeedback(ctx context.Context, fb *model.Feedback) error
}
