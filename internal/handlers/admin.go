package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// AdminHandler handles the platform administration surface: user listing
// and KYC verification of doctors and hospitals.
type AdminHandler struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{DB: db, Logger: logger}
}

// Dashboard returns platform-wide counts and the size of the KYC backlog.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"users":        &models.User{},
		"hospitals":    &models.Hospital{},
		"doctors":      &models.Doctor{},
		"patients":     &models.Patient{},
		"appointments": &models.Appointment{},
	} {
		var n int64
		if err := h.DB.Model(model).Count(&n).Error; err != nil {
			utils.InternalServerError(c, "Failed to count "+name+": "+err.Error())
			return
		}
		counts[name] = n
	}

	var pendingDoctors, pendingHospitals int64
	if err := h.DB.Model(&models.Doctor{}).Where("is_verified = ?", false).
		Count(&pendingDoctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to count pending doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Hospital{}).Where("is_verified = ?", false).
		Count(&pendingHospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to count pending hospitals: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"counts": counts,
		"pendingVerifications": gin.H{
			"doctors":   pendingDoctors,
			"hospitals": pendingHospitals,
		},
	})
}

// Users lists platform users with an optional role filter.
func (h *AdminHandler) Users(c *gin.Context) {
	query := h.DB.Order("created_at desc")
	if role := c.Query("role"); role != "" {
		if !models.ValidRole(models.Role(role)) {
			utils.BadRequest(c, "Unknown role: "+role)
			return
		}
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	result := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		result = append(result, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully", result)
}

// PendingDoctors lists doctors awaiting KYC verification.
func (h *AdminHandler) PendingDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Preload("User").Preload("Hospital").
		Where("is_verified = ?", false).
		Order("created_at asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, gin.H{
			"id":              d.ID,
			"name":            d.User.FullName,
			"email":           d.User.Email,
			"specialization":  d.Specialization,
			"licenseNumber":   d.LicenseNumber,
			"hospital":        d.Hospital.Name,
			"rejectionReason": d.RejectionReason,
			"registeredAt":    d.CreatedAt,
		})
	}
	utils.Success(c, "Pending doctors fetched successfully", result)
}

// VerificationRequest carries a KYC decision.
type VerificationRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}

// VerifyDoctor approves or rejects a doctor's KYC submission.
func (h *AdminHandler) VerifyDoctor(c *gin.Context) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	var req VerificationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if doctor.IsVerified {
		utils.BadRequest(c, "Doctor is already verified")
		return
	}

	if req.Action == "approve" {
		now := time.Now()
		doctor.IsVerified = true
		doctor.VerifiedAt = &now
		doctor.VerifiedByAdminID = adminID
		doctor.RejectionReason = ""
	} else {
		if req.Reason == "" {
			utils.BadRequest(c, "reason is required when rejecting")
			return
		}
		doctor.RejectionReason = req.Reason
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	h.Logger.Info("doctor kyc decision",
		zap.String("doctor_id", doctor.ID),
		zap.String("action", req.Action),
		zap.String("admin_id", adminID),
	)
	utils.Success(c, "Doctor verification updated", doctor)
}

// PendingHospitals lists hospitals awaiting KYC verification.
func (h *AdminHandler) PendingHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := h.DB.Where("is_verified = ?", false).
		Order("created_at asc").Find(&hospitals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch hospitals: "+err.Error())
		return
	}
	utils.Success(c, "Pending hospitals fetched successfully", hospitals)
}

// VerifyHospital approves or rejects a hospital's KYC submission.
func (h *AdminHandler) VerifyHospital(c *gin.Context) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	var req VerificationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var hospital models.Hospital
	if err := h.DB.First(&hospital, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Hospital not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if hospital.IsVerified {
		utils.BadRequest(c, "Hospital is already verified")
		return
	}

	if req.Action == "approve" {
		now := time.Now()
		hospital.IsVerified = true
		hospital.VerifiedAt = &now
		hospital.VerifiedByAdminID = adminID
		hospital.RejectionReason = ""
	} else {
		if req.Reason == "" {
			utils.BadRequest(c, "reason is required when rejecting")
			return
		}
		hospital.RejectionReason = req.Reason
	}

	if err := h.DB.Save(&hospital).Error; err != nil {
		utils.InternalServerError(c, "Failed to update hospital: "+err.Error())
		return
	}

	h.Logger.Info("hospital kyc decision",
		zap.String("hospital_id", hospital.ID),
		zap.String("action", req.Action),
		zap.String("admin_id", adminID),
	)
	utils.Success(c, "Hospital verification updated", hospital)
}
