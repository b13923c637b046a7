package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// MedicationState holds the prescription slots
type MedicationState struct {
	container

	List         *Slot[[]model.Medication]
	Detail       *Slot[model.Medication]
	Create       *Slot[model.Medication]
	Deactivation *Slot[model.Medication]

	repo  MedicationRepo
	cache EntityCache
}

// NewMedicationState creates the medication container
func NewMedicationState(repo MedicationRepo, cache EntityCache, timeout time.Duration, logger *zap.Logger) *MedicationState {
	return &MedicationState{
		container:    newContainer(timeout, logger),
		List:         NewSlot[[]model.Medication](),
		Detail:       NewSlot[model.Medication](),
		Create:       NewSlot[model.Medication](),
		Deactivation: NewSlot[model.Medication](),
		repo:         repo,
		cache:        cache,
	}
}

// FetchForPatient loads a patient's medication list
func (s *MedicationState) FetchForPatient(patientID int64) {
	s.List.setLoading()
	s.run(func(ctx context.Context) {
		meds, err := s.repo.ListByPatient(ctx, patientID)
		if err != nil {
			s.List.fail(err)
			return
		}
		for i := range meds {
			s.mirror(ctx, &meds[i])
		}
		s.List.succeed(meds)
	})
}

// FetchDetail loads one medication into the Detail slot
func (s *MedicationState) FetchDetail(medicationID int64) {
	s.Detail.setLoading()
	s.run(func(ctx context.Context) {
		med, err := s.repo.Get(ctx, medicationID)
		if err != nil {
			s.Detail.fail(err)
			return
		}
		s.mirror(ctx, med)
		s.Detail.succeed(*med)
	})
}

// Prescribe creates a new medication record
func (s *MedicationState) Prescribe(req *model.MedicationRequest) {
	s.Create.setLoading()
	s.run(func(ctx context.Context) {
		med, err := s.repo.Create(ctx, req)
		if err != nil {
			s.Create.fail(err)
			return
		}
		s.mirror(ctx, med)
		s.Create.succeed(*med)
		s.Detail.succeed(*med)
	})
}

// Deactivate ends a prescription. This is terminal: once inactive a
// medication never becomes active again.
func (s *MedicationState) Deactivate(medicationID int64) {
	s.Deactivation.setLoading()
	s.run(func(ctx context.Context) {
		med, err := s.repo.Deactivate(ctx, medicationID)
		if err != nil {
			s.Deactivation.fail(err)
			return
		}
		s.mirror(ctx, med)
		s.Deactivation.succeed(*med)
		s.Detail.succeed(*med)
	})
}

func (s *MedicationState) mirror(ctx context.Context, med *model.Medication) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertMedication(ctx, med); err != nil {
		s.logger.Warn("failed to cache medication", zap.Error(err), zap.Int64("medication_id", med.ID))
	}
}
