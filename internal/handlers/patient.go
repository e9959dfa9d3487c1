package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/scheduling"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// PatientHandler handles the patient-facing booking and profile surface.
type PatientHandler struct {
	DB     *gorm.DB
	Engine *scheduling.Engine
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, engine *scheduling.Engine) *PatientHandler {
	return &PatientHandler{DB: db, Engine: engine}
}

// patientForRequest loads the patient profile of the authenticated user.
func (h *PatientHandler) patientForRequest(c *gin.Context) (*models.Patient, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var patient models.Patient
	if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &patient, true
}

// Dashboard returns upcoming appointments and visit counts.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}

	now := time.Now()
	var upcoming []models.Appointment
	if err := h.DB.Where("patient_id = ? AND status = ? AND start_time >= ?",
		patient.ID, models.StatusScheduled, now).
		Order("start_time asc").Limit(5).Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	var pastCount int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? AND start_time < ?", patient.ID, now).
		Count(&pastCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"patientId":            patient.ID,
		"upcomingAppointments": len(upcoming),
		"pastAppointments":     pastCount,
		"nextAppointments":     upcoming,
	})
}

// BrowseDoctors lists verified doctors, optionally filtered by specialization.
func (h *PatientHandler) BrowseDoctors(c *gin.Context) {
	query := h.DB.Preload("User").Preload("Hospital").Where("is_verified = ?", true)
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization ILIKE ?", "%"+specialization+"%")
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, gin.H{
			"id":             d.ID,
			"name":           d.User.FullName,
			"specialization": d.Specialization,
			"hospital":       d.Hospital.Name,
		})
	}
	utils.Success(c, "Doctors fetched successfully", result)
}

// DoctorSlots returns the free slots of a doctor for one day.
func (h *PatientHandler) DoctorSlots(c *gin.Context) {
	if _, ok := h.patientForRequest(c); !ok {
		return
	}

	day, err := parseDay(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	if slots == nil {
		slots = []scheduling.Slot{}
	}
	utils.Success(c, "Available slots fetched successfully", slots)
}

// ListAppointments returns the patient's appointments with an optional
// status filter.
func (h *PatientHandler) ListAppointments(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Doctor.User").Preload("Hospital").
		Where("patient_id = ?", patient.ID).Order("start_time desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, gin.H{
			"id":         a.ID,
			"date":       a.StartTime.Format("2006-01-02"),
			"time":       a.StartTime.Format("15:04"),
			"status":     a.Status,
			"doctorName": a.Doctor.User.FullName,
			"hospital":   a.Hospital.Name,
			"reason":     a.Reason,
		})
	}
	utils.Success(c, "Appointments fetched successfully", result)
}

// BookAppointmentRequest represents the request body for booking. The end
// time is never part of the request; it is derived from the doctor's slot
// duration on the server.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:MM
	Reason   string `json:"reason"`
}

// BookAppointment books a slot with a doctor for the authenticated patient.
func (h *PatientHandler) BookAppointment(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}

	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	start, err := parseSlotTime(req.Date, req.Time)
	if err != nil {
		utils.BadRequest(c, "Invalid date or time format. Use YYYY-MM-DD and HH:MM")
		return
	}
	if start.Before(time.Now()) {
		utils.BadRequest(c, "Appointment must be in the future")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "General Checkup"
	}

	appt, err := h.Engine.Book(c.Request.Context(), scheduling.BookingRequest{
		DoctorID:  req.DoctorID,
		PatientID: patient.ID,
		Start:     start,
		Reason:    reason,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Created(c, "Appointment booked successfully", appt)
}

// appointmentOwnedBy loads an appointment and enforces patient ownership.
// An appointment of another patient is reported as not found rather than
// forbidden, to avoid leaking its existence.
func (h *PatientHandler) appointmentOwnedBy(c *gin.Context, patientID string) (*models.Appointment, bool) {
	var appt models.Appointment
	err := h.DB.First(&appt, "id = ? AND patient_id = ?", c.Param("id"), patientID).Error
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

// RescheduleAppointmentRequest represents the request body for rescheduling.
type RescheduleAppointmentRequest struct {
	NewDate string `json:"newDate" binding:"required"` // YYYY-MM-DD
	NewTime string `json:"newTime" binding:"required"` // HH:MM
}

// RescheduleAppointment moves one of the patient's appointments to a new
// slot, re-running the conflict check with the appointment itself excluded.
func (h *PatientHandler) RescheduleAppointment(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}
	appt, ok := h.appointmentOwnedBy(c, patient.ID)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	newStart, err := parseSlotTime(req.NewDate, req.NewTime)
	if err != nil {
		utils.BadRequest(c, "Invalid date or time format. Use YYYY-MM-DD and HH:MM")
		return
	}
	if newStart.Before(time.Now()) {
		utils.BadRequest(c, "New appointment time must be in the future")
		return
	}

	moved, err := h.Engine.Reschedule(c.Request.Context(), appt.ID, newStart)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment rescheduled successfully", moved)
}

// CancelAppointmentRequest carries the optional cancellation reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointment cancels one of the patient's appointments, freeing the
// interval for future bookings.
func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}
	appt, ok := h.appointmentOwnedBy(c, patient.ID)
	if !ok {
		return
	}

	// Body is optional on DELETE.
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	cancelled, err := h.Engine.Cancel(c.Request.Context(), appt.ID, req.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled successfully", cancelled)
}

// TreatmentRecords returns the patient's treatment history.
func (h *PatientHandler) TreatmentRecords(c *gin.Context) {
	patient, ok := h.patientForRequest(c)
	if !ok {
		return
	}

	var records []models.TreatmentRecord
	if err := h.DB.Preload("Doctor.User").
		Where("patient_id = ?", patient.ID).
		Order("created_at desc").Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch records: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(records))
	for _, r := range records {
		entry := gin.H{
			"id":          r.ID,
			"date":        r.CreatedAt.Format("2006-01-02"),
			"doctorName":  r.Doctor.User.FullName,
			"diagnosis":   r.Diagnosis,
			"treatment":   r.TreatmentProvided,
			"medications": r.MedicationsPrescribed,
		}
		if r.FollowUpDate != nil {
			entry["followUp"] = r.FollowUpDate.Format("2006-01-02")
		}
		result = append(result, entry)
	}
	utils.Success(c, "Treatment records fetched successfully", result)
}
