package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/scheduling"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// DoctorHandler handles the doctor-facing schedule and patient surface.
type DoctorHandler struct {
	DB     *gorm.DB
	Engine *scheduling.Engine
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, engine *scheduling.Engine) *DoctorHandler {
	return &DoctorHandler{DB: db, Engine: engine}
}

// doctorForRequest loads the doctor profile of the authenticated user.
func (h *DoctorHandler) doctorForRequest(c *gin.Context) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var doctor models.Doctor
	if err := h.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &doctor, true
}

// Dashboard returns today's appointments plus headline numbers.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todays []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND start_time >= ? AND start_time < ?",
		doctor.ID, dayStart, dayEnd).
		Order("start_time asc").Find(&todays).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	var completedToday int64
	for _, a := range todays {
		if a.Status == models.StatusCompleted {
			completedToday++
		}
	}

	var activePatients int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctor.ID).
		Distinct("patient_id").Count(&activePatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"todayCount":     len(todays),
		"revenue":        float64(completedToday) * h.Engine.ConsultationFee,
		"activePatients": activePatients,
		"appointments":   todays,
	})
}

// GetScheduleConfig returns the doctor's scheduling configuration.
func (h *DoctorHandler) GetScheduleConfig(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}
	utils.Success(c, "Schedule configuration fetched successfully", doctor.Schedule)
}

// ScheduleConfigRequest represents the request body for updating the
// scheduling configuration.
type ScheduleConfigRequest struct {
	SlotDuration   int                   `json:"slotDuration" binding:"required,gt=0"`
	BreakDuration  int                   `json:"breakDuration" binding:"gte=0"`
	WorkStart      string                `json:"workStart" binding:"required"`
	WorkEnd        string                `json:"workEnd" binding:"required"`
	AvailableDays  []int                 `json:"availableDays" binding:"required,min=1,dive,min=1,max=7"`
	SchedulingMode models.SchedulingMode `json:"schedulingMode"`
}

// UpdateScheduleConfig replaces the doctor's scheduling configuration. The
// change drives future slot generation only; appointments already booked
// under the old configuration are left untouched.
func (h *DoctorHandler) UpdateScheduleConfig(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}

	var req ScheduleConfigRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	mode := req.SchedulingMode
	if mode == "" {
		mode = models.ModeInterleaved
	}
	cfg := models.ScheduleConfig{
		SlotDurationMinutes:  req.SlotDuration,
		BreakDurationMinutes: req.BreakDuration,
		WorkStart:            req.WorkStart,
		WorkEnd:              req.WorkEnd,
		AvailableDays:        datatypes.NewJSONSlice(req.AvailableDays),
		SchedulingMode:       mode,
	}
	if err := scheduling.ValidateConfig(cfg); err != nil {
		respondSchedulingError(c, err)
		return
	}

	doctor.Schedule = cfg
	if err := h.DB.Save(doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule configuration: "+err.Error())
		return
	}
	utils.Success(c, "Schedule configuration updated successfully", doctor.Schedule)
}

// ScheduleSlots returns the doctor's own free and booked intervals for a day.
func (h *DoctorHandler) ScheduleSlots(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}

	day, err := parseDay(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	free, err := h.Engine.AvailableSlots(c.Request.Context(), doctor.ID, day)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if free == nil {
		free = []scheduling.Slot{}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var booked []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
		doctor.ID, models.StatusScheduled, dayStart, dayStart.AddDate(0, 0, 1)).
		Order("start_time asc").Find(&booked).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Schedule fetched successfully", gin.H{
		"date":      day.Format("2006-01-02"),
		"freeSlots": free,
		"booked":    booked,
	})
}

// Patients lists the distinct patients that have appointments with this
// doctor.
func (h *DoctorHandler) Patients(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}

	var patients []models.Patient
	if err := h.DB.Preload("User").
		Joins("JOIN appointments ON appointments.patient_id = patients.id").
		Where("appointments.doctor_id = ?", doctor.ID).
		Distinct("patients.*").
		Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(patients))
	for _, p := range patients {
		result = append(result, gin.H{
			"id":     p.ID,
			"name":   p.User.FullName,
			"age":    p.Age,
			"gender": p.Gender,
		})
	}
	utils.Success(c, "Patients fetched successfully", result)
}

// PatientDetail returns one patient with recent appointment history.
func (h *DoctorHandler) PatientDetail(c *gin.Context) {
	if _, ok := h.doctorForRequest(c); !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var recent []models.Appointment
	if err := h.DB.Where("patient_id = ?", patient.ID).
		Order("start_time desc").Limit(10).Find(&recent).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Patient fetched successfully", gin.H{
		"id":                    patient.ID,
		"name":                  patient.User.FullName,
		"email":                 patient.User.Email,
		"age":                   patient.Age,
		"gender":                patient.Gender,
		"phone":                 patient.Phone,
		"medicalHistorySummary": patient.MedicalHistorySummary,
		"recentAppointments":    recent,
	})
}

// appointmentOfDoctor loads an appointment and enforces doctor ownership.
func (h *DoctorHandler) appointmentOfDoctor(c *gin.Context, doctorID string) (*models.Appointment, bool) {
	var appt models.Appointment
	err := h.DB.First(&appt, "id = ? AND doctor_id = ?", c.Param("id"), doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &appt, true
}

// CompleteAppointment marks one of the doctor's appointments as completed
// and records the visit revenue.
func (h *DoctorHandler) CompleteAppointment(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}
	appt, ok := h.appointmentOfDoctor(c, doctor.ID)
	if !ok {
		return
	}

	done, err := h.Engine.Complete(c.Request.Context(), appt.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment completed", done)
}

// NoShowAppointment marks one of the doctor's appointments as a no-show.
func (h *DoctorHandler) NoShowAppointment(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}
	appt, ok := h.appointmentOfDoctor(c, doctor.ID)
	if !ok {
		return
	}

	done, err := h.Engine.MarkNoShow(c.Request.Context(), appt.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment marked as no-show", done)
}

// TreatmentRecordRequest represents the request body for creating a
// treatment record.
type TreatmentRecordRequest struct {
	PatientID             string `json:"patientId" binding:"required,uuid"`
	AppointmentID         string `json:"appointmentId"`
	Diagnosis             string `json:"diagnosis" binding:"required"`
	TreatmentProvided     string `json:"treatmentProvided"`
	MedicationsPrescribed string `json:"medicationsPrescribed"`
	FollowUpDate          string `json:"followUpDate"` // YYYY-MM-DD
}

// CreateTreatmentRecord writes a treatment history entry for a patient.
func (h *DoctorHandler) CreateTreatmentRecord(c *gin.Context) {
	doctor, ok := h.doctorForRequest(c)
	if !ok {
		return
	}

	var req TreatmentRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	record := models.TreatmentRecord{
		PatientID:             patient.ID,
		DoctorID:              doctor.ID,
		AppointmentID:         req.AppointmentID,
		Diagnosis:             req.Diagnosis,
		TreatmentProvided:     req.TreatmentProvided,
		MedicationsPrescribed: req.MedicationsPrescribed,
	}
	if req.FollowUpDate != "" {
		followUp, err := parseDay(req.FollowUpDate)
		if err != nil {
			utils.BadRequest(c, "Invalid followUpDate format. Use YYYY-MM-DD")
			return
		}
		record.FollowUpDate = &followUp
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create treatment record: "+err.Error())
		return
	}
	utils.Created(c, "Treatment record created successfully", record)
}
