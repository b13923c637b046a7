package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/internal/validation"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// VitalsState holds the measurement slots: history, the most recent
// reading, and uploads
type VitalsState struct {
	container

	History *Slot[[]model.Vitals]
	Latest  *Slot[model.Vitals]
	Upload  *Slot[model.Vitals]

	repo  VitalsRepo
	cache EntityCache
}

// NewVitalsState creates the vitals container
func NewVitalsState(repo VitalsRepo, cache EntityCache, timeout time.Duration, logger *zap.Logger) *VitalsState {
	return &VitalsState{
		container: newContainer(timeout, logger),
		History:   NewSlot[[]model.Vitals](),
		Latest:    NewSlot[model.Vitals](),
		Upload:    NewSlot[model.Vitals](),
		repo:      repo,
		cache:     cache,
	}
}

// FetchHistory loads a patient's vitals history
func (s *VitalsState) FetchHistory(patientID int64) {
	s.History.setLoading()
	s.run(func(ctx context.Context) {
		history, err := s.repo.ListByPatient(ctx, patientID)
		if err != nil {
			s.History.fail(err)
			return
		}
		for i := range history {
			s.mirror(ctx, &history[i])
		}
		s.History.succeed(history)
	})
}

// FetchLatest loads a patient's most recent reading
func (s *VitalsState) FetchLatest(patientID int64) {
	s.Latest.setLoading()
	s.run(func(ctx context.Context) {
		latest, err := s.repo.Latest(ctx, patientID)
		if err != nil {
			s.Latest.fail(err)
			return
		}
		s.mirror(ctx, latest)
		s.Latest.succeed(*latest)
	})
}

// Record validates and uploads a new set of measurements. On success
// the Latest slot follows, since a fresh upload is by definition the
// newest reading.
func (s *VitalsState) Record(req *model.VitalsRequest) {
	s.Upload.setLoading()

	if err := validation.CheckVitals(req); err != nil {
		s.Upload.fail(err)
		return
	}

	s.run(func(ctx context.Context) {
		vitals, err := s.repo.Create(ctx, req)
		if err != nil {
			s.Upload.fail(err)
			return
		}
		s.mirror(ctx, vitals)
		s.Upload.succeed(*vitals)
		s.Latest.succeed(*vitals)
	})
}

func (s *VitalsState) mirror(ctx context.Context, v *model.Vitals) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertVitals(ctx, v); err != nil {
		s.logger.Warn("failed to cache vitals", zap.Error(err), zap.Int64("vitals_id", v.ID))
	}
}
