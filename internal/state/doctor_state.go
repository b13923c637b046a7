package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// DoctorState holds the doctor-profile slots
type DoctorState struct {
	container

	Detail  *Slot[model.DoctorDetail]
	Save    *Slot[model.DoctorDetail]
	Doctors *Slot[[]model.User]

	repo  DoctorRepo
	cache UserCache
}

// NewDoctorState creates the doctor container
func NewDoctorState(repo DoctorRepo, cache UserCache, timeout time.Duration, logger *zap.Logger) *DoctorState {
	return &DoctorState{
		container: newContainer(timeout, logger),
		Detail:    NewSlot[model.DoctorDetail](),
		Save:      NewSlot[model.DoctorDetail](),
		Doctors:   NewSlot[[]model.User](),
		repo:      repo,
		cache:     cache,
	}
}

// FetchDetail loads a doctor's professional profile
func (s *DoctorState) FetchDetail(userID int64) {
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

// SaveDetail persists profile edits and refreshes the Detail slot
func (s *DoctorState) SaveDetail(detail *model.DoctorDetail) {
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

// FetchDoctors loads all doctor accounts, e.g. for the booking screen
func (s *DoctorState) FetchDoctors() {
	s.Doctors.setLoading()
	s.run(func(ctx context.Context) {
		doctors, err := s.repo.List(ctx)
		if err != nil {
			s.Doctors.fail(err)
			return
		}
		if s.cache != nil {
			for i := range doctors {
				if err := s.cache.Upsert(ctx, &doctors[i]); err != nil {
					s.logger.Warn("failed to cache doctor", zap.Error(err), zap.Int64("user_id", doctors[i].ID))
				}
			}
		}
		s.Doctors.succeed(doctors)
	})
}
