package scheduling

import (
	"context"
	"time"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// Store is the persistence boundary of the scheduling engine. Lookup methods
// return (nil, nil) when the entity does not exist; the engine translates
// that into its own not-found errors.
type Store interface {
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	// GetDoctorForUpdate behaves like GetDoctor but, when the store is
	// transactional, additionally locks the doctor row for the duration of
	// the surrounding transaction.
	GetDoctorForUpdate(ctx context.Context, doctorID string) (*models.Doctor, error)
	GetPatient(ctx context.Context, patientID string) (*models.Patient, error)
	GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)

	// ListScheduledBetween returns the doctor's appointments with
	// status=scheduled whose interval intersects [from, to).
	ListScheduledBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)

	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	CreateRevenue(ctx context.Context, rev *models.Revenue) error

	// InTransaction runs fn against a store view bound to one transaction;
	// any error rolls the whole unit of work back.
	InTransaction(ctx context.Context, fn func(tx Store) error) error
}
