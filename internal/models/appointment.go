package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment is the booking relation between a doctor and a patient.
// StartTime/EndTime form a half-open interval [start, end): two appointments
// touch without conflict when one ends exactly where the other begins.
// Appointments are never cascade-deleted; the only way out of the calendar
// is an explicit cancel.
type Appointment struct {
	BaseModel
	PatientID  string            `gorm:"size:36;index" json:"patientId"`
	DoctorID   string            `gorm:"size:36;index" json:"doctorId"`
	HospitalID string            `gorm:"size:36;index" json:"hospitalId"`
	StartTime  time.Time         `gorm:"index;not null" json:"startTime"`
	EndTime    time.Time         `gorm:"not null" json:"endTime"`
	Status     AppointmentStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	Reason     string            `gorm:"size:255" json:"reason"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `gorm:"size:255" json:"cancellationReason,omitempty"`

	// Relations
	Patient  Patient  `gorm:"foreignKey:PatientID" json:"-"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID" json:"-"`
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
}

// Overlaps reports whether the appointment interval intersects [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}
