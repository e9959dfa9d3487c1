package models

// Patient holds the demographic profile for a patient account.
type Patient struct {
	BaseModel
	UserID                string `gorm:"size:36;uniqueIndex" json:"userId"`
	Age                   int    `json:"age"`
	Gender                string `gorm:"size:20" json:"gender"`
	Phone                 string `gorm:"size:30" json:"phone,omitempty"`
	MedicalHistorySummary string `gorm:"type:text" json:"medicalHistorySummary,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
