package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/config"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/handlers"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/scheduling"
)

// SetupRoutes configures all the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger, engine *scheduling.Engine) {
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	patientHandler := handlers.NewPatientHandler(db, engine)
	doctorHandler := handlers.NewDoctorHandler(db, engine)
	orgHandler := handlers.NewOrganizationHandler(db)
	adminHandler := handlers.NewAdminHandler(db, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
		}

		patient := api.Group("/patient")
		patient.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patient.GET("/dashboard", patientHandler.Dashboard)
			patient.GET("/doctors", patientHandler.BrowseDoctors)
			patient.GET("/doctors/:id/slots", patientHandler.DoctorSlots)
			patient.GET("/appointments", patientHandler.ListAppointments)
			patient.POST("/appointments", patientHandler.BookAppointment)
			patient.PUT("/appointments/:id/reschedule", patientHandler.RescheduleAppointment)
			patient.DELETE("/appointments/:id", patientHandler.CancelAppointment)
			patient.GET("/records", patientHandler.TreatmentRecords)
		}

		doctor := api.Group("/doctor")
		doctor.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctor.GET("/dashboard", doctorHandler.Dashboard)
			doctor.GET("/schedule-config", doctorHandler.GetScheduleConfig)
			doctor.PUT("/schedule-config", doctorHandler.UpdateScheduleConfig)
			doctor.GET("/schedule-slots", doctorHandler.ScheduleSlots)
			doctor.GET("/patients", doctorHandler.Patients)
			doctor.GET("/patients/:id", doctorHandler.PatientDetail)
			doctor.PATCH("/appointments/:id/complete", doctorHandler.CompleteAppointment)
			doctor.PATCH("/appointments/:id/no-show", doctorHandler.NoShowAppointment)
			doctor.POST("/records", doctorHandler.CreateTreatmentRecord)
		}

		org := api.Group("/organization")
		org.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleOrganization))
		{
			org.GET("/dashboard", orgHandler.Dashboard)
			org.GET("/doctors", orgHandler.Doctors)
			org.GET("/staff", orgHandler.Staff)
			org.POST("/staff", orgHandler.CreateStaff)
			org.PUT("/staff/:id/assignments", orgHandler.AssignStaff)
			org.GET("/inventory", orgHandler.Inventory)
			org.POST("/inventory", orgHandler.CreateInventoryItem)
			org.PUT("/inventory/:id", orgHandler.UpdateInventoryItem)
			org.GET("/finance", orgHandler.Finance)
			org.PUT("/profile", orgHandler.UpdateProfile)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.Users)
			admin.GET("/kyc/doctors", adminHandler.PendingDoctors)
			admin.PATCH("/kyc/doctors/:id", adminHandler.VerifyDoctor)
			admin.GET("/kyc/hospitals", adminHandler.PendingHospitals)
			admin.PATCH("/kyc/hospitals/:id", adminHandler.VerifyHospital)
		}
	}
}
