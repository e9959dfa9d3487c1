package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// DefaultConsultationFee is charged when an appointment is completed and no
// hospital-specific pricing applies.
const DefaultConsultationFee = 1500

// Engine computes availability and commits bookings while holding the
// no-overlap invariant: no two scheduled appointments of one doctor may
// intersect. All conflict-check-then-write sequences for a doctor run under
// that doctor's lock, inside one store transaction, so concurrent attempts
// on the same interval are totally ordered. Different doctors never contend.
type Engine struct {
	store           Store
	locks           *doctorLocks
	logger          *zap.Logger
	ConsultationFee float64
}

// NewEngine creates a scheduling engine on top of the given store.
func NewEngine(store Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:           store,
		locks:           newDoctorLocks(),
		logger:          logger,
		ConsultationFee: DefaultConsultationFee,
	}
}

// BookingRequest describes a booking attempt. The end time is always derived
// from the doctor's slot duration, never supplied by the caller.
type BookingRequest struct {
	DoctorID  string
	PatientID string
	Start     time.Time
	Reason    string
}

// AvailableSlots returns the doctor's free candidate slots for one day:
// every generated slot that does not intersect a scheduled appointment.
// A candidate that overlaps a booking even partially is excluded entirely.
func (e *Engine) AvailableSlots(ctx context.Context, doctorID string, day time.Time) ([]Slot, error) {
	doctor, err := e.store.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	candidates, err := GenerateSlots(doctor.Schedule, day)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	booked, err := e.store.ListScheduledBetween(ctx, doctorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var free []Slot
	for _, slot := range candidates {
		if !intersectsAny(slot, booked) {
			free = append(free, slot)
		}
	}
	return free, nil
}

func intersectsAny(slot Slot, appts []models.Appointment) bool {
	for i := range appts {
		if appts[i].Overlaps(slot.Start, slot.End) {
			return true
		}
	}
	return false
}

// validateSlotStart checks that a booking starting at start fits the
// doctor's working window on an available day: the derived interval
// [start, start+slotDuration) must lie entirely inside [WorkStart, WorkEnd).
func validateSlotStart(cfg models.ScheduleConfig, start time.Time) error {
	startMin, endMin, err := validateConfig(cfg)
	if err != nil {
		return err
	}
	if !dayAvailable(cfg, start) {
		return ErrInvalidSlot
	}
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	workStart := midnight.Add(time.Duration(startMin) * time.Minute)
	workEnd := midnight.Add(time.Duration(endMin) * time.Minute)
	end := start.Add(time.Duration(cfg.SlotDurationMinutes) * time.Minute)
	if start.Before(workStart) || end.After(workEnd) {
		return ErrInvalidSlot
	}
	return nil
}

// Book atomically validates and commits a new appointment. It fails with
// ErrConflict when any scheduled appointment of the doctor overlaps the
// derived interval.
func (e *Engine) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	lock := e.locks.get(req.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	var appt *models.Appointment
	err := e.store.InTransaction(ctx, func(tx Store) error {
		doctor, err := tx.GetDoctorForUpdate(ctx, req.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		patient, err := tx.GetPatient(ctx, req.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := validateSlotStart(doctor.Schedule, req.Start); err != nil {
			return err
		}
		end := req.Start.Add(time.Duration(doctor.Schedule.SlotDurationMinutes) * time.Minute)

		conflicts, err := tx.ListScheduledBetween(ctx, req.DoctorID, req.Start, end)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrConflict
		}

		appt = &models.Appointment{
			PatientID:  req.PatientID,
			DoctorID:   req.DoctorID,
			HospitalID: doctor.HospitalID,
			StartTime:  req.Start,
			EndTime:    end,
			Status:     models.StatusScheduled,
			Reason:     req.Reason,
		}
		return tx.CreateAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("doctor_id", appt.DoctorID),
		zap.String("patient_id", appt.PatientID),
		zap.Time("start", appt.StartTime),
		zap.Time("end", appt.EndTime),
	)
	return appt, nil
}

// Reschedule moves a scheduled appointment to a new start, re-deriving the
// end time and re-running the conflict check with the appointment itself
// excluded from the overlap scan.
func (e *Engine) Reschedule(ctx context.Context, appointmentID string, newStart time.Time) (*models.Appointment, error) {
	existing, err := e.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	lock := e.locks.get(existing.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	var appt *models.Appointment
	err = e.store.InTransaction(ctx, func(tx Store) error {
		// Re-read under the lock: the appointment may have changed since
		// the unlocked lookup above.
		appt, err = tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}
		if appt.Status != models.StatusScheduled {
			return ErrInvalidState
		}

		doctor, err := tx.GetDoctorForUpdate(ctx, appt.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		if err := validateSlotStart(doctor.Schedule, newStart); err != nil {
			return err
		}
		newEnd := newStart.Add(time.Duration(doctor.Schedule.SlotDurationMinutes) * time.Minute)

		conflicts, err := tx.ListScheduledBetween(ctx, appt.DoctorID, newStart, newEnd)
		if err != nil {
			return err
		}
		for i := range conflicts {
			if conflicts[i].ID != appt.ID {
				return ErrConflict
			}
		}

		appt.StartTime = newStart
		appt.EndTime = newEnd
		return tx.SaveAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("appointment rescheduled",
		zap.String("appointment_id", appt.ID),
		zap.String("doctor_id", appt.DoctorID),
		zap.Time("start", appt.StartTime),
	)
	return appt, nil
}

// Cancel transitions a scheduled appointment to cancelled and records when
// and why. Cancelled appointments no longer count against the overlap check,
// so the interval is immediately free for rebooking. Cancelling twice fails
// with ErrAlreadyCancelled.
func (e *Engine) Cancel(ctx context.Context, appointmentID, reason string) (*models.Appointment, error) {
	existing, err := e.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	lock := e.locks.get(existing.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	var appt *models.Appointment
	err = e.store.InTransaction(ctx, func(tx Store) error {
		appt, err = tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}
		switch appt.Status {
		case models.StatusCancelled:
			return ErrAlreadyCancelled
		case models.StatusScheduled:
		default:
			return ErrInvalidState
		}

		now := time.Now()
		appt.Status = models.StatusCancelled
		appt.CancelledAt = &now
		appt.CancellationReason = reason
		return tx.SaveAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("appointment cancelled",
		zap.String("appointment_id", appt.ID),
		zap.String("doctor_id", appt.DoctorID),
		zap.String("reason", reason),
	)
	return appt, nil
}

// Complete marks a scheduled appointment as completed and records the visit
// revenue against the hospital.
func (e *Engine) Complete(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return e.finish(ctx, appointmentID, models.StatusCompleted)
}

// MarkNoShow marks a scheduled appointment as a no-show. No revenue is
// recorded.
func (e *Engine) MarkNoShow(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return e.finish(ctx, appointmentID, models.StatusNoShow)
}

func (e *Engine) finish(ctx context.Context, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	existing, err := e.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAppointmentNotFound
	}

	lock := e.locks.get(existing.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	var appt *models.Appointment
	err = e.store.InTransaction(ctx, func(tx Store) error {
		appt, err = tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}
		if appt.Status != models.StatusScheduled {
			return ErrInvalidState
		}

		appt.Status = status
		if err := tx.SaveAppointment(ctx, appt); err != nil {
			return err
		}

		if status == models.StatusCompleted {
			rev := &models.Revenue{
				HospitalID:    appt.HospitalID,
				AppointmentID: appt.ID,
				Amount:        e.ConsultationFee,
				PatientAmount: e.ConsultationFee,
				ServiceType:   "consultation",
				PaymentStatus: models.PaymentPending,
			}
			return tx.CreateRevenue(ctx, rev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("appointment closed",
		zap.String("appointment_id", appt.ID),
		zap.String("status", string(appt.Status)),
	)
	return appt, nil
}
