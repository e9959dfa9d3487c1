package models

import (
	"time"
)

// TreatmentRecord is a dental treatment history entry written by a doctor
// after a visit.
type TreatmentRecord struct {
	BaseModel
	PatientID     string `gorm:"size:36;index" json:"patientId"`
	DoctorID      string `gorm:"size:36;index" json:"doctorId"`
	AppointmentID string `gorm:"size:36;index" json:"appointmentId,omitempty"`

	Diagnosis             string     `gorm:"type:text;not null" json:"diagnosis"`
	TreatmentProvided     string     `gorm:"type:text" json:"treatmentProvided"`
	MedicationsPrescribed string     `gorm:"type:text" json:"medicationsPrescribed"`
	FollowUpDate          *time.Time `json:"followUpDate,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
