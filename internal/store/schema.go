package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema of the on-device store. Messages are authoritative here; the
// remaining tables cache the signed-in user's slice of the backend so
// screens keep rendering between refreshes.
//
// Referential rules mirror the backend contract: deleting a user takes
// their appointments, vitals, feedback and messages with it, while
// medication and report references to a removed appointment are nulled,
// not cascaded.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS patient_details (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		blood_group VARCHAR(10) NOT NULL DEFAULT '',
		allergies TEXT[] NOT NULL DEFAULT '{}',
		medical_history TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS doctor_details (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		specialization VARCHAR(255) NOT NULL DEFAULT '',
		license_number VARCHAR(100) NOT NULL DEFAULT '',
		qualification VARCHAR(255) NOT NULL DEFAULT '',
		experience_years INT NOT NULL DEFAULT 0,
		consultation_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		available_for_emergency BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGINT PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		doctor_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		scheduled_time TIMESTAMPTZ NOT NULL,
		status VARCHAR(50) NOT NULL,
		type VARCHAR(50) NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		notes TEXT,
		meeting_link TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS medications (
		id BIGINT PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		appointment_id BIGINT REFERENCES appointments(id) ON DELETE SET NULL,
		name VARCHAR(255) NOT NULL,
		dosage VARCHAR(100) NOT NULL,
		frequency VARCHAR(100) NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		instructions TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS vitals (
		id BIGINT PRIMARY KEY,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		heart_rate INT,
		systolic_pressure INT,
		diastolic_pressure INT,
		temperature DOUBLE PRECISION,
		oxygen_saturation DOUBLE PRECISION,
		respiratory_rate INT,
		blood_sugar DOUBLE PRECISION,
		recorded_at TIMESTAMPTZ NOT NULL,
		critical BOOLEAN NOT NULL DEFAULT FALSE,
		critical_notes TEXT,
		alert_sent BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id BIGINT PRIMARY KEY,
		doctor_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		appointment_id BIGINT NOT NULL UNIQUE REFERENCES appointments(id) ON DELETE CASCADE,
		comments TEXT NOT NULL DEFAULT '',
		diagnosis TEXT NOT NULL DEFAULT '',
		recommendations TEXT NOT NULL DEFAULT '',
		next_steps TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		id BIGINT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL,
		patient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		doctor_id BIGINT,
		summary TEXT NOT NULL DEFAULT '',
		report_type VARCHAR(100) NOT NULL DEFAULT '',
		appointment_id BIGINT REFERENCES appointments(id) ON DELETE SET NULL,
		vitals_id BIGINT,
		feedback_id BIGINT,
		file_path TEXT,
		time_period_start TIMESTAMPTZ,
		time_period_end TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		attachment TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_participant
		ON messages (sender_id, receiver_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_unread
		ON messages (receiver_id, sender_id) WHERE NOT is_read`,
}

// Migrate creates the local schema. Statements are idempotent so it is
// safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
