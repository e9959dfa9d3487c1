package models

import (
	"time"
)

// Hospital is the tenant entity every doctor, staff member, inventory item
// and appointment belongs to. There is no implicit default hospital: doctor
// registration must name one explicitly.
type Hospital struct {
	BaseModel
	OwnerUserID   string `gorm:"size:36;index" json:"ownerUserId"` // organization account that manages this hospital
	Name          string `gorm:"size:255;not null;index" json:"name"`
	Address       string `gorm:"size:255" json:"address"`
	City          string `gorm:"size:100" json:"city"`
	Phone         string `gorm:"size:30" json:"phone"`
	Email         string `gorm:"size:255" json:"email"`
	LicenseNumber string `gorm:"size:100" json:"licenseNumber,omitempty"`

	// KYC verification, toggled by admins only
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
	VerifiedByAdminID string     `gorm:"size:36" json:"-"`
	RejectionReason   string     `gorm:"size:255" json:"rejectionReason,omitempty"`

	// Relations
	Doctors      []Doctor        `gorm:"foreignKey:HospitalID" json:"-"`
	Staff        []Staff         `gorm:"foreignKey:HospitalID" json:"-"`
	Inventory    []InventoryItem `gorm:"foreignKey:HospitalID" json:"-"`
	Appointments []Appointment   `gorm:"foreignKey:HospitalID" json:"-"`
}
