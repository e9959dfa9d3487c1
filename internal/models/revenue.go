package models

import (
	"time"
)

// PaymentStatus of a revenue entry.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Revenue is a financial transaction recorded against a hospital, typically
// written when an appointment is completed.
type Revenue struct {
	BaseModel
	HospitalID    string `gorm:"size:36;index;not null" json:"hospitalId"`
	AppointmentID string `gorm:"size:36;index" json:"appointmentId,omitempty"`

	Amount          float64       `gorm:"not null" json:"amount"`
	InsuranceAmount float64       `json:"insuranceAmount"`
	PatientAmount   float64       `json:"patientAmount"`
	ServiceType     string        `gorm:"size:100" json:"serviceType"`
	PaymentStatus   PaymentStatus `gorm:"size:20;default:'pending'" json:"paymentStatus"`
	PaymentDate     *time.Time    `json:"paymentDate,omitempty"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
}
