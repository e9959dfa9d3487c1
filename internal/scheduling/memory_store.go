package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
)

// MemoryStore is an in-memory Store. It backs the engine in tests and
// mirrors the transactional guarantees of GormStore closely enough for the
// engine's single-process serialization: the engine's per-doctor lock is
// what orders concurrent check-and-write sequences, so InTransaction only
// has to provide a consistent view, not rollback.
type MemoryStore struct {
	mu           sync.RWMutex
	doctors      map[string]models.Doctor
	patients     map[string]models.Patient
	appointments map[string]models.Appointment
	revenues     []models.Revenue
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		doctors:      make(map[string]models.Doctor),
		patients:     make(map[string]models.Patient),
		appointments: make(map[string]models.Appointment),
	}
}

// AddDoctor registers a doctor, assigning an ID when none is set.
func (s *MemoryStore) AddDoctor(d models.Doctor) models.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	s.doctors[d.ID] = d
	return d
}

// AddPatient registers a patient, assigning an ID when none is set.
func (s *MemoryStore) AddPatient(p models.Patient) models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.patients[p.ID] = p
	return p
}

func (s *MemoryStore) GetDoctor(_ context.Context, doctorID string) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryStore) GetDoctorForUpdate(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.GetDoctor(ctx, doctorID)
}

func (s *MemoryStore) GetPatient(_ context.Context, patientID string) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[patientID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryStore) GetAppointment(_ context.Context, appointmentID string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemoryStore) ListScheduledBetween(_ context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.DoctorID != doctorID || a.Status != models.StatusScheduled {
			continue
		}
		if a.StartTime.Before(to) && from.Before(a.EndTime) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateAppointment(_ context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	s.appointments[appt.ID] = *appt
	return nil
}

func (s *MemoryStore) SaveAppointment(_ context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt.UpdatedAt = time.Now()
	s.appointments[appt.ID] = *appt
	return nil
}

func (s *MemoryStore) CreateRevenue(_ context.Context, rev *models.Revenue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}
	s.revenues = append(s.revenues, *rev)
	return nil
}

// Revenues returns a snapshot of the recorded revenue entries.
func (s *MemoryStore) Revenues() []models.Revenue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Revenue, len(s.revenues))
	copy(out, s.revenues)
	return out
}

func (s *MemoryStore) InTransaction(_ context.Context, fn func(tx Store) error) error {
	return fn(s)
}
