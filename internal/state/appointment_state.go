package state

import (
	"context"
	"time"

	"github.com/carelink/carelink-go/internal/validation"
	"github.com/carelink/carelink-go/pkg/model"
	"go.uber.org/zap"
)

// AppointmentState holds the appointment slots: the visible list, the
// opened appointment, and the booking / status-change operations
type AppointmentState struct {
	container

	List         *Slot[[]model.Appointment]
	Detail       *Slot[model.Appointment]
	Create       *Slot[model.Appointment]
	StatusChange *Slot[model.Appointment]

	repo  AppointmentRepo
	cache EntityCache
}

// NewAppointmentState creates the appointment container. cache may be
// nil when no local store is attached.
func NewAppointmentState(repo AppointmentRepo, cache EntityCache, timeout time.Duration, logger *zap.Logger) *AppointmentState {
	return &AppointmentState{
		container:    newContainer(timeout, logger),
		List:         NewSlot[[]model.Appointment](),
		Detail:       NewSlot[model.Appointment](),
		Create:       NewSlot[model.Appointment](),
		StatusChange: NewSlot[model.Appointment](),
		repo:         repo,
		cache:        cache,
	}
}

// FetchForPatient loads the appointments booked by a patient
func (s *AppointmentState) FetchForPatient(patientID int64) {
	s.List.setLoading()
	s.run(func(ctx context.Context) {
		appts, err := s.repo.ListByPatient(ctx, patientID)
		if err != nil {
			s.List.fail(err)
			return
		}
		s.mirrorAll(ctx, appts)
		s.List.succeed(appts)
	})
}

// FetchForDoctor loads the appointments assigned to a doctor
func (s *AppointmentState) FetchForDoctor(doctorID int64) {
	s.List.setLoading()
	s.run(func(ctx context.Context) {
		appts, err := s.repo.ListByDoctor(ctx, doctorID)
		if err != nil {
			s.List.fail(err)
			return
		}
		s.mirrorAll(ctx, appts)
		s.List.succeed(appts)
	})
}

// FetchDetail loads one appointment into the Detail slot
func (s *AppointmentState) FetchDetail(appointmentID int64) {
	s.Detail.setLoading()
	s.run(func(ctx context.Context) {
		appt, err := s.repo.Get(ctx, appointmentID)
		if err != nil {
			s.Detail.fail(err)
			return
		}
		s.mirror(ctx, appt)
		s.Detail.succeed(*appt)
	})
}

// Book validates the request and creates the appointment. On success
// the Detail slot also picks up the new appointment as the selected one.
func (s *AppointmentState) Book(req *model.AppointmentRequest) {
	s.Create.setLoading()

	if err := validation.CheckAppointment(req, time.Now()); err != nil {
		s.Create.fail(err)
		return
	}

	s.run(func(ctx context.Context) {
		appt, err := s.repo.Create(ctx, req)
		if err != nil {
			s.Create.fail(err)
			return
		}
		s.mirror(ctx, appt)
		s.Create.succeed(*appt)
		s.Detail.succeed(*appt)
	})
}

// ChangeStatus moves an appointment through its lifecycle (approve,
// decline, complete, cancel). The Detail slot follows on success.
func (s *AppointmentState) ChangeStatus(appointmentID int64, update *model.AppointmentStatusUpdate) {
	s.StatusChange.setLoading()
	s.run(func(ctx context.Context) {
		appt, err := s.repo.UpdateStatus(ctx, appointmentID, update)
		if err != nil {
			s.StatusChange.fail(err)
			return
		}
		s.mirror(ctx, appt)
		s.StatusChange.succeed(*appt)
		s.Detail.succeed(*appt)
	})
}

func (s *AppointmentState) mirror(ctx context.Context, appt *model.Appointment) {
	if s.cache == nil {
		return
	}
	if err := s.cache.UpsertAppointment(ctx, appt); err != nil {
		s.logger.Warn("failed to cache appointment", zap.Error(err), zap.Int64("appointment_id", appt.ID))
	}
}

func (s *AppointmentState) mirrorAll(ctx context.Context, appts []model.Appointment) {
	for i := range appts {
		s.mirror(ctx, &appts[i])
	}
}
