package store

import (
	"context"
	"fmt"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CacheStore mirrors the signed-in user's backend records locally so the
// app keeps rendering between refreshes. Rows are replaced wholesale on
// each successful fetch; the backend stays authoritative.
type CacheStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewCacheStore creates a new CacheStore
func NewCacheStore(db *pgxpool.Pool, logger *zap.Logger) *CacheStore {
	return &CacheStore{
		db:     db,
		logger: logger,
	}
}

// UpsertAppointment inserts or refreshes a cached appointment
func (s *CacheStore) UpsertAppointment(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, scheduled_time, status, type,
			reason, notes, meeting_link, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			scheduled_time = EXCLUDED.scheduled_time,
			status = EXCLUDED.status,
			type = EXCLUDED.type,
			reason = EXCLUDED.reason,
			notes = EXCLUDED.notes,
			meeting_link = EXCLUDED.meeting_link,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.Exec(ctx, query,
		appt.ID, appt.PatientID, appt.DoctorID, appt.ScheduledTime,
		appt.Status, appt.Type, appt.Reason, appt.Notes, appt.MeetingLink,
		appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to cache appointment", zap.Error(err), zap.Int64("appointment_id", appt.ID))
		return fmt.Errorf("failed to cache appointment: %w", err)
	}

	return nil
}

// DeleteAppointment removes a cached appointment. Medication and report
// rows referencing it have their appointment_id nulled by the schema.
func (s *CacheStore) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, appointmentID); err != nil {
		s.logger.Error("failed to delete cached appointment", zap.Error(err), zap.Int64("appointment_id", appointmentID))
		return fmt.Errorf("failed to delete cached appointment: %w", err)
	}
	return nil
}

// UpsertMedication inserts or refreshes a cached medication
func (s *CacheStore) UpsertMedication(ctx context.Context, med *model.Medication) error {
	query := `
		INSERT INTO medications (
			id, patient_id, appointment_id, name, dosage, frequency,
			start_date, end_date, instructions, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			appointment_id = EXCLUDED.appointment_id,
			name = EXCLUDED.name,
			dosage = EXCLUDED.dosage,
			frequency = EXCLUDED.frequency,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			instructions = EXCLUDED.instructions,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.Exec(ctx, query,
		med.ID, med.PatientID, med.AppointmentID, med.Name, med.Dosage,
		med.Frequency, med.StartDate, med.EndDate, med.Instructions,
		med.Active, med.CreatedAt, med.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to cache medication", zap.Error(err), zap.Int64("medication_id", med.ID))
		return fmt.Errorf("failed to cache medication: %w", err)
	}

	return nil
}

// FindMedication retrieves a cached medication by id
func (s *CacheStore) FindMedication(ctx context.Context, medicationID int64) (*model.Medication, error) {
	query := `
		SELECT id, patient_id, appointment_id, name, dosage, frequency,
		       start_date, end_date, instructions, active, created_at, updated_at
		FROM medications
		WHERE id = $1
	`

	var med model.Medication
	err := s.db.QueryRow(ctx, query, medicationID).Scan(
		&med.ID, &med.PatientID, &med.AppointmentID, &med.Name, &med.Dosage,
		&med.Frequency, &med.StartDate, &med.EndDate, &med.Instructions,
		&med.Active, &med.CreatedAt, &med.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find cached medication %d: %w", medicationID, err)
	}

	return &med, nil
}

// UpsertVitals inserts or refreshes a cached vitals record
func (s *CacheStore) UpsertVitals(ctx context.Context, v *model.Vitals) error {
	query := `
		INSERT INTO vitals (
			id, patient_id, heart_rate, systolic_pressure, diastolic_pressure,
			temperature, oxygen_saturation, respiratory_rate, blood_sugar,
			recorded_at, critical, critical_notes, alert_sent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			critical = EXCLUDED.critical,
			critical_notes = EXCLUDED.critical_notes,
			alert_sent = EXCLUDED.alert_sent
	`

	_, err := s.db.Exec(ctx, query,
		v.ID, v.PatientID, v.HeartRate, v.SystolicPressure, v.DiastolicPressure,
		v.Temperature, v.OxygenSaturation, v.RespiratoryRate, v.BloodSugar,
		v.RecordedAt, v.Critical, v.CriticalNotes, v.AlertSent,
	)
	if err != nil {
		s.logger.Error("failed to cache vitals", zap.Error(err), zap.Int64("vitals_id", v.ID))
		return fmt.Errorf("failed to cache vitals: %w", err)
	}

	return nil
}

// UpsertFeedback inserts or refreshes a cached feedback record. The
// unique constraint on appointment_id enforces one feedback per visit.
func (s *CacheStore) UpsertFeedback(ctx context.Context, fb *model.Feedback) error {
	query := `
		INSERT INTO feedback (
			id, doctor_id, patient_id, appointment_id, comments, diagnosis,
			recommendations, next_steps, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			comments = EXCLUDED.comments,
			diagnosis = EXCLUDED.diagnosis,
			recommendations = EXCLUDED.recommendations,
			next_steps = EXCLUDED.next_steps,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.Exec(ctx, query,
		fb.ID, fb.DoctorID, fb.PatientID, fb.AppointmentID, fb.Comments,
		fb.Diagnosis, fb.Recommendations, fb.NextSteps, fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to cache feedback", zap.Error(err), zap.Int64("feedback_id", fb.ID))
		return fmt.Errorf("failed to cache feedback: %w", err)
	}

	return nil
}

// CountRows returns the row count of a cached table, used by sync
// diagnostics and tests
func (s *CacheStore) CountRows(ctx context.Context, table string) (int, error) {
	allowed := map[string]bool{
		"appointments": true,
		"medications":  true,
		"vitals":       true,
		"feedback":     true,
		"reports":      true,
		"messages":     true,
	}
	if !allowed[table] {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}

	return count, nil
}
