package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// GormStore is the database-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store over the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) getDoctor(ctx context.Context, doctorID string, forUpdate bool) (*models.Doctor, error) {
	q := s.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var doctor models.Doctor
	if err := q.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return &doctor, nil
}

func (s *GormStore) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.getDoctor(ctx, doctorID, false)
}

func (s *GormStore) GetDoctorForUpdate(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.getDoctor(ctx, doctorID, true)
}

func (s *GormStore) GetPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &patient, nil
}

func (s *GormStore) GetAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).First(&appt, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &appt, nil
}

func (s *GormStore) ListScheduledBetween(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusScheduled).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time asc").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("list scheduled appointments: %w", err)
	}
	return appts, nil
}

func (s *GormStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Create(appt).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *GormStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Save(appt).Error; err != nil {
		return fmt.Errorf("save appointment: %w", err)
	}
	return nil
}

func (s *GormStore) CreateRevenue(ctx context.Context, rev *models.Revenue) error {
	if err := s.db.WithContext(ctx).Create(rev).Error; err != nil {
		return fmt.Errorf("create revenue: %w", err)
	}
	return nil
}

// InTransaction runs fn against a store bound to a single database
// transaction; gorm rolls back on error.
func (s *GormStore) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
