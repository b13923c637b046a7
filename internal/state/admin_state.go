package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// AdminState holds the administration slots: account listings and
// account removal
type AdminState struct {
	container

	Patients *Slot[[]model.User]
	Doctors  *Slot[[]model.User]
	Removal  *Slot[int64]

	repo AdminRepo
}

// NewAdminState creates the admin container
func NewAdminState(repo AdminRepo, timeout time.Duration, logger *zap.Logger) *AdminState {
	return &AdminState{
		container: newContainer(timeout, logger),
		Patients:  NewSlot[[]model.User](),
		Doctors:   NewSlot[[]model.User](),
		Removal:   NewSlot[int64](),
		repo:      repo,
	}
}

// FetchPatients loads all patient accounts
func (s *AdminState) FetchPatients() {
	s.Patients.setLoading()
	s.run(func(ctx context.Context) {
		patients, err := s.repo.ListPatients(ctx)
		if err != nil {
			s.Patients.fail(err)
			return
		}
		s.Patients.succeed(patients)
	})
}

// FetchDoctors loads all doctor accounts
func (s *AdminState) FetchDoctors() {
	s.Doctors.setLoading()
	s.run(func(ctx context.Context) {
		doctors, err := s.repo.ListDoctors(ctx)
		if err != nil {
			s.Doctors.fail(err)
			return
		}
		s.Doctors.succeed(doctors)
	})
}

// RemoveUser deletes an account. The backend cascades the user's
// dependent records; the Removal slot resolves to the removed id.
func (s *AdminState) RemoveUser(userID int64) {
	s.Removal.setLoading()
	s.run(func(ctx context.Context) {
		if err := s.repo.RemoveUser(ctx, userID); err != nil {
			s.Removal.fail(err)
			return
		}
		s.Removal.succeed(userID)
	})
}
