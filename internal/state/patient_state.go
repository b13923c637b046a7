package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// PatientState holds the patient-profile slots
type PatientState struct {
	container

	Detail   *Slot[model.PatientDetail]
	Save     *Slot[model.PatientDetail]
	Patients *Slot[[]model.User]

	repo  PatientRepo
	cache UserCache
}

// NewPatientState creates the patient container
func NewPatientState(repo PatientRepo, cache UserCache, timeout time.Duration, logger *zap.Logger) *PatientState {
	return &PatientState{
		container: newContainer(timeout, logger),
		Detail:    NewSlot[model.PatientDetail](),
		Save:      NewSlot[model.PatientDetail](),
		Patients:  NewSlot[[]model.User](),
		repo:      repo,
		cache:     cache,
	}
}

// FetchDetail loads a patient's medical profile
func (s *PatientState) FetchDetail(userID int64) {
	s.Detail.setLoading()
	s.run(func(ctx context.Context) {
		detail, err := s.repo.GetDetail(ctx, userID)
		if err != nil {
			s.Detail.fail(err)
			return
		}
		s.Detail.succeed(*detail)
	})
}

// SaveDetail persists profile edits. On success the Detail slot is
// refreshed too so open screens see the new values.
func (s *PatientState) SaveDetail(detail *model.PatientDetail) {
	s.Save.setLoading()
	s.run(func(ctx context.Context) {
		saved, err := s.repo.SaveDetail(ctx, detail)
		if err != nil {
			s.Save.fail(err)
			return
		}
		s.Save.succeed(*saved)
		s.Detail.succeed(*saved)
	})
}

// FetchPatients loads all patient accounts
func (s *PatientState) FetchPatients() {
	s.Patients.setLoading()
	s.run(func(ctx context.Context) {
		patients, err := s.repo.List(ctx)
		if err != nil {
			s.Patients.fail(err)
			return
		}
		if s.cache != nil {
			for i := range patients {
				if err := s.cache.Upsert(ctx, &patients[i]); err != nil {
					s.logger.Warn("failed to cache patient", zap.Error(err), zap.Int64("user_id", patients[i].ID))
				}
			}
		}
		s.Patients.succeed(patients)
	})
}
