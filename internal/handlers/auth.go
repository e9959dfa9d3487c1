package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/config"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Config: cfg, Logger: logger}
}

// RegisterRequest represents the request body for registering a user.
// Role-specific fields are required depending on the role; the handler
// dispatches on the typed role rather than comparing raw strings downstream.
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	FullName string      `json:"fullName" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`

	// Doctor fields
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"licenseNumber"`
	HospitalID     string `json:"hospitalId"`

	// Patient fields
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Phone  string `json:"phone"`

	// Staff fields (HospitalID shared with doctors)
	Position string `json:"position"`

	// Organization fields
	HospitalName    string `json:"hospitalName"`
	HospitalAddress string `json:"hospitalAddress"`
	HospitalCity    string `json:"hospitalCity"`
	HospitalPhone   string `json:"hospitalPhone"`
}

func defaultScheduleConfig() models.ScheduleConfig {
	return models.ScheduleConfig{
		SlotDurationMinutes:  30,
		BreakDurationMinutes: 5,
		WorkStart:            "09:00",
		WorkEnd:              "17:00",
		AvailableDays:        datatypes.JSONSlice[int]{1, 2, 3, 4, 5},
		SchedulingMode:       models.ModeInterleaved,
	}
}

// Register creates a user account together with its role-specific profile.
// Doctors and staff must name an existing hospital explicitly; a hospital is
// never created implicitly on their behalf.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !models.ValidRole(req.Role) {
		utils.BadRequest(c, "Unknown role: "+string(req.Role))
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	// Role-specific preconditions, checked before anything is written.
	var hospital models.Hospital
	switch req.Role {
	case models.RoleDoctor, models.RoleStaff:
		if req.HospitalID == "" {
			utils.BadRequest(c, "hospitalId is required for "+string(req.Role)+" registration")
			return
		}
		if err := h.DB.First(&hospital, "id = ?", req.HospitalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Hospital not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		if req.Role == models.RoleStaff && req.Position == "" {
			utils.BadRequest(c, "position is required for staff registration")
			return
		}
	case models.RoleOrganization:
		if req.HospitalName == "" {
			utils.BadRequest(c, "hospitalName is required for organization registration")
			return
		}
	}

	user := models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Role {
		case models.RoleDoctor:
			specialization := req.Specialization
			if specialization == "" {
				specialization = "General Dentist"
			}
			return tx.Create(&models.Doctor{
				UserID:         user.ID,
				HospitalID:     hospital.ID,
				Specialization: specialization,
				LicenseNumber:  req.LicenseNumber,
				Schedule:       defaultScheduleConfig(),
			}).Error
		case models.RolePatient:
			return tx.Create(&models.Patient{
				UserID: user.ID,
				Age:    req.Age,
				Gender: req.Gender,
				Phone:  req.Phone,
			}).Error
		case models.RoleStaff:
			return tx.Create(&models.Staff{
				UserID:     user.ID,
				HospitalID: hospital.ID,
				Position:   req.Position,
			}).Error
		case models.RoleOrganization:
			return tx.Create(&models.Hospital{
				OwnerUserID:   user.ID,
				Name:          req.HospitalName,
				Address:       req.HospitalAddress,
				City:          req.HospitalCity,
				Phone:         req.HospitalPhone,
				Email:         req.Email,
				LicenseNumber: req.LicenseNumber,
			}).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Registration failed: "+err.Error())
		return
	}

	h.Logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !user.IsActive {
		utils.Forbidden(c, "Account is deactivated")
		return
	}

	token, err := utils.GenerateAccessToken(&user, h.Config)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"accessToken": token,
		"tokenType":   "bearer",
		"role":        user.Role,
		"user":        user.Sanitize(),
	})
}

// GetProfile returns the current user with role-specific details attached.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	details := gin.H{}
	switch user.Role {
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.DB.Preload("Hospital").Where("user_id = ?", user.ID).First(&doctor).Error; err == nil {
			details = gin.H{
				"doctorId":       doctor.ID,
				"specialization": doctor.Specialization,
				"licenseNumber":  doctor.LicenseNumber,
				"hospitalId":     doctor.HospitalID,
				"hospitalName":   doctor.Hospital.Name,
				"isVerified":     doctor.IsVerified,
				"scheduleConfig": doctor.Schedule,
			}
		}
	case models.RolePatient:
		var patient models.Patient
		if err := h.DB.Where("user_id = ?", user.ID).First(&patient).Error; err == nil {
			details = gin.H{
				"patientId": patient.ID,
				"age":       patient.Age,
				"gender":    patient.Gender,
				"phone":     patient.Phone,
			}
		}
	case models.RoleStaff:
		var staff models.Staff
		if err := h.DB.Where("user_id = ?", user.ID).First(&staff).Error; err == nil {
			details = gin.H{
				"staffId":    staff.ID,
				"hospitalId": staff.HospitalID,
				"position":   staff.Position,
			}
		}
	case models.RoleOrganization:
		var hospital models.Hospital
		if err := h.DB.Where("owner_user_id = ?", user.ID).First(&hospital).Error; err == nil {
			details = gin.H{
				"hospitalId": hospital.ID,
				"name":       hospital.Name,
				"isVerified": hospital.IsVerified,
			}
		}
	}

	utils.Success(c, "Profile fetched successfully", gin.H{
		"user":    user.Sanitize(),
		"details": details,
	})
}
