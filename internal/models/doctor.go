package models

import (
	"time"

	"gorm.io/datatypes"
)

// SchedulingMode controls how the slot generator spaces candidate slots.
type SchedulingMode string

const (
	ModeContinuous  SchedulingMode = "continuous"  // back-to-back slots, break ignored
	ModeInterleaved SchedulingMode = "interleaved" // break inserted between slots
	ModeCustom      SchedulingMode = "custom"      // break honored as configured
)

// ScheduleConfig is the doctor's declarative availability configuration.
// Changing it only affects future slot generation; appointments already
// booked under an older config stay untouched.
type ScheduleConfig struct {
	SlotDurationMinutes  int                      `gorm:"default:30" json:"slotDuration"`
	BreakDurationMinutes int                      `gorm:"default:5" json:"breakDuration"`
	WorkStart            string                   `gorm:"size:5;default:'09:00'" json:"workStart"` // "HH:MM" 24hr format
	WorkEnd              string                   `gorm:"size:5;default:'17:00'" json:"workEnd"`   // "HH:MM" 24hr format
	AvailableDays        datatypes.JSONSlice[int] `json:"availableDays"`                           // weekday numbers, Monday=1 .. Sunday=7
	SchedulingMode       SchedulingMode           `gorm:"size:20;default:'interleaved'" json:"schedulingMode"`
}

// Doctor holds the professional profile and the scheduling configuration
// that drives slot generation.
type Doctor struct {
	BaseModel
	UserID         string `gorm:"size:36;uniqueIndex" json:"userId"`
	HospitalID     string `gorm:"size:36;index;not null" json:"hospitalId"`
	Specialization string `gorm:"size:100;not null" json:"specialization"`
	LicenseNumber  string `gorm:"size:100" json:"licenseNumber,omitempty"`

	// KYC verification, toggled by admins only
	IsVerified        bool       `gorm:"default:false" json:"isVerified"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
	VerifiedByAdminID string     `gorm:"size:36" json:"-"`
	RejectionReason   string     `gorm:"size:255" json:"rejectionReason,omitempty"`

	Schedule ScheduleConfig `gorm:"embedded" json:"scheduleConfig"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Hospital     Hospital      `gorm:"foreignKey:HospitalID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}
