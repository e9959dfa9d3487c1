package models

import (
	"gorm.io/datatypes"
)

// Staff is a non-doctor employee of a hospital (receptionist, hygienist, ...).
type Staff struct {
	BaseModel
	UserID     string                      `gorm:"size:36;uniqueIndex" json:"userId"`
	HospitalID string                      `gorm:"size:36;index;not null" json:"hospitalId"`
	Position   string                      `gorm:"size:100;not null" json:"position"`
	Doctors    datatypes.JSONSlice[string] `json:"assignedDoctors"` // doctor IDs this staff member assists
	Shifts     datatypes.JSONSlice[string] `json:"assignedShifts"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
}
