package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// FeedbackState holds the post-visit review slots
type FeedbackState struct {
	container

	ForAppointment *Slot[model.Feedback]
	PatientList    *Slot[[]model.Feedback]
	DoctorList     *Slot[[]model.Feedback]
	Create         *Slot[model.Feedback]

	repo  FeedbackRepo
	cache EntityCache
}

// NewFeedbackState creates the feedback container
func NewFeedbackState(repo FeedbackRepo, cache EntityCache, timeout time.Duration, logger *zap.Logger) *FeedbackState {
	return &FeedbackState{
		container:      newContainer(timeout, logger),
		ForAppointment: NewSlot[model.Feedback](),
		PatientList:    NewSlot[[]model.Feedback](),
		DoctorList:     NewSlot[[]model.Feedback](),
		Create:         NewSlot[model.Feedback](),
		repo:           repo,
		cache:          cache,
	}
}

// FetchForAppointment loads the single review attached to an
// appointment, if one exists
func (s *FeedbackState) FetchForAppointment(appointmentID int64) {
	s.ForAppointment.setLoading()
	s.run(func(ctx context.Context) {
		fb, err := s.repo.GetByAppointment(ctx, appointmentID)
		if err != nil {
			s.ForAppointment.fail(err)
			return
		}
		s.mirror(ctx, fb)
		s.ForAppointment.succeed(*fb)
	})
}

// FetchForPatient loads the reviews a patient has written
func (s *FeedbackState) FetchForPatient(patientID int64) {
	s.PatientList.setLoading()
	s.run(func(ctx context.Context) {
		list, err := s.repo.ListByPatient(ctx, patientID)
		if err != nil {
			s.PatientList.fail(err)
			return
		}
		for i := range list {
			s.mirror(ctx, &list[i])
		}
		s.PatientList.succeed(list)
	})
}

// FetchForDoctor loads the reviews written about a doctor
func (s *FeedbackState) FetchForDoctor(doctorID int64) {
	s.DoctorList.setLoading()
	s.run(func(ctx context.Context) {
		list, err := s.repo.ListByDoctor(ctx, doctorID)
		if err != nil {
			s.DoctorList.fail(err)
			return
		}
		for i := range list {
			s.mirror(ctx, &list[i])
		}
		s.DoctorList.succeed(list)
	})
}

// Submit creates a review for a completed appointment. Each appointment
// takes at most one review; a duplicate fails with
// repository.ErrFeedbackExists. On success the ForAppointment slot
// follows, so an open appointment screen flips straight to the new review.
func (s *FeedbackState) Submit(req *model.FeedbackRequest) {
	s.Create.setLoading()
	s.run(func(ctx context.Context) {
		fb, err := s.repo.Create(ctx, req)
		if err != nil {
			s.Create.fail(err)
			return
		}
		s.mirror(ctx, fb)
		s.Create.succeed(*fb)
		s.ForAppointment.succeed(*fb)
	})
}

func (s *FeedbackState) mirror(ctx context.Context, fb *model.Feedback) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertFeedback(ctx, fb); err != nil {
		s.logger.Warn("failed to cache feedback", zap.Error(err), zap.Int64("feedback_id", fb.ID))
	}
}
