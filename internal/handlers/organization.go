package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/middleware"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/models"
	"github.com/Shaik-ahammad/jas01-new-dental/internal/utils"
)

// OrganizationHandler handles the hospital-management surface used by
// organization accounts: staff, inventory, and finance.
type OrganizationHandler struct {
	DB *gorm.DB
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{DB: db}
}

// hospitalForRequest loads the hospital owned by the authenticated
// organization account. Ownership is always resolved through the owner
// column; there is no fallback hospital.
func (h *OrganizationHandler) hospitalForRequest(c *gin.Context) (*models.Hospital, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var hospital models.Hospital
	if err := h.DB.Where("owner_user_id = ?", userID).First(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Hospital profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &hospital, true
}

// Dashboard returns headline numbers for the hospital.
func (h *OrganizationHandler) Dashboard(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var doctorCount, staffCount, lowStock int64
	if err := h.DB.Model(&models.Doctor{}).Where("hospital_id = ?", hospital.ID).
		Count(&doctorCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Staff{}).Where("hospital_id = ?", hospital.ID).
		Count(&staffCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to count staff: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.InventoryItem{}).
		Where("hospital_id = ? AND status <> ?", hospital.ID, models.InventoryGood).
		Count(&lowStock).Error; err != nil {
		utils.InternalServerError(c, "Failed to count inventory: "+err.Error())
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthRevenue float64
	if err := h.DB.Model(&models.Revenue{}).
		Where("hospital_id = ? AND created_at >= ?", hospital.ID, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthRevenue).Error; err != nil {
		utils.InternalServerError(c, "Failed to sum revenue: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", gin.H{
		"hospital":      gin.H{"id": hospital.ID, "name": hospital.Name, "isVerified": hospital.IsVerified},
		"doctorCount":   doctorCount,
		"staffCount":    staffCount,
		"lowStockItems": lowStock,
		"monthRevenue":  monthRevenue,
	})
}

// Doctors lists the hospital's doctors.
func (h *OrganizationHandler) Doctors(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var doctors []models.Doctor
	if err := h.DB.Preload("User").Where("hospital_id = ?", hospital.ID).
		Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, gin.H{
			"id":             d.ID,
			"name":           d.User.FullName,
			"email":          d.User.Email,
			"specialization": d.Specialization,
			"isVerified":     d.IsVerified,
		})
	}
	utils.Success(c, "Doctors fetched successfully", result)
}

// Staff lists the hospital's staff members.
func (h *OrganizationHandler) Staff(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.DB.Preload("User").Where("hospital_id = ?", hospital.ID).
		Find(&staff).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch staff: "+err.Error())
		return
	}

	result := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		result = append(result, gin.H{
			"id":       s.ID,
			"name":     s.User.FullName,
			"email":    s.User.Email,
			"position": s.Position,
			"doctors":  s.Doctors,
			"shifts":   s.Shifts,
		})
	}
	utils.Success(c, "Staff fetched successfully", result)
}

// doctorsBelongToHospital reports whether every listed doctor ID belongs to
// the hospital.
func (h *OrganizationHandler) doctorsBelongToHospital(hospitalID string, doctorIDs []string) (bool, error) {
	if len(doctorIDs) == 0 {
		return true, nil
	}
	var n int64
	err := h.DB.Model(&models.Doctor{}).
		Where("hospital_id = ? AND id IN ?", hospitalID, doctorIDs).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == int64(len(doctorIDs)), nil
}

// CreateStaffRequest represents the request body for adding a staff member.
type CreateStaffRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	FullName string   `json:"fullName" binding:"required"`
	Position string   `json:"position" binding:"required"`
	Doctors  []string `json:"doctors"`
	Shifts   []string `json:"shifts"`
}

// CreateStaff adds a staff member to the hospital: the account and the staff
// profile are created together, already attached to this hospital, so staff
// onboarding stays under the organization's control rather than going through
// public self-registration.
func (h *OrganizationHandler) CreateStaff(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var req CreateStaffRequest
	if !utils.BindAndValidate(c, &req) {
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

	belong, err := h.doctorsBelongToHospital(hospital.ID, req.Doctors)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if !belong {
		utils.BadRequest(c, "One or more doctors do not belong to this hospital")
		return
	}

	user := models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     models.RoleStaff,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	var staff models.Staff
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		staff = models.Staff{
			UserID:     user.ID,
			HospitalID: hospital.ID,
			Position:   req.Position,
			Doctors:    datatypes.NewJSONSlice(req.Doctors),
			Shifts:     datatypes.NewJSONSlice(req.Shifts),
		}
		return tx.Create(&staff).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create staff member: "+err.Error())
		return
	}

	utils.Created(c, "Staff member created successfully", gin.H{
		"id":       staff.ID,
		"name":     user.FullName,
		"email":    user.Email,
		"position": staff.Position,
		"doctors":  staff.Doctors,
		"shifts":   staff.Shifts,
	})
}

// AssignStaffRequest updates a staff member's doctor and shift assignments.
type AssignStaffRequest struct {
	Doctors []string `json:"doctors"`
	Shifts  []string `json:"shifts"`
}

// AssignStaff updates assignments for one of the hospital's staff members.
func (h *OrganizationHandler) AssignStaff(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var req AssignStaffRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var staff models.Staff
	err := h.DB.First(&staff, "id = ? AND hospital_id = ?", c.Param("id"), hospital.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Staff member not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Every assigned doctor must belong to this hospital.
	belong, err := h.doctorsBelongToHospital(hospital.ID, req.Doctors)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if !belong {
		utils.BadRequest(c, "One or more doctors do not belong to this hospital")
		return
	}

	staff.Doctors = datatypes.NewJSONSlice(req.Doctors)
	staff.Shifts = datatypes.NewJSONSlice(req.Shifts)
	if err := h.DB.Save(&staff).Error; err != nil {
		utils.InternalServerError(c, "Failed to update staff: "+err.Error())
		return
	}
	utils.Success(c, "Staff assignments updated", staff)
}

// InventoryItemRequest represents the request body for creating or updating
// an inventory item.
type InventoryItemRequest struct {
	ItemName        string  `json:"itemName" binding:"required"`
	Category        string  `json:"category"`
	Quantity        int     `json:"quantity" binding:"gte=0"`
	Unit            string  `json:"unit"`
	MinThreshold    int     `json:"minThreshold" binding:"gte=0"`
	MaxThreshold    int     `json:"maxThreshold" binding:"gte=0"`
	ReorderQuantity int     `json:"reorderQuantity" binding:"gte=0"`
	CostPerUnit     float64 `json:"costPerUnit" binding:"gte=0"`
}

// Inventory lists the hospital's inventory, optionally filtered by status.
func (h *OrganizationHandler) Inventory(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	query := h.DB.Where("hospital_id = ?", hospital.ID).Order("item_name asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch inventory: "+err.Error())
		return
	}
	utils.Success(c, "Inventory fetched successfully", items)
}

// CreateInventoryItem adds an item to the hospital's inventory.
func (h *OrganizationHandler) CreateInventoryItem(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var req InventoryItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}
	item := models.InventoryItem{
		HospitalID:      hospital.ID,
		ItemName:        req.ItemName,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Unit:            unit,
		MinThreshold:    req.MinThreshold,
		MaxThreshold:    req.MaxThreshold,
		ReorderQuantity: req.ReorderQuantity,
		CostPerUnit:     req.CostPerUnit,
	}
	item.DeriveStatus()

	if err := h.DB.Create(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to create inventory item: "+err.Error())
		return
	}
	utils.Created(c, "Inventory item created successfully", item)
}

// UpdateInventoryItem updates an inventory item and recomputes its status.
func (h *OrganizationHandler) UpdateInventoryItem(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	err := h.DB.First(&item, "id = ? AND hospital_id = ?", c.Param("id"), hospital.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Inventory item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req InventoryItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item.ItemName = req.ItemName
	item.Category = req.Category
	item.Quantity = req.Quantity
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.MinThreshold = req.MinThreshold
	item.MaxThreshold = req.MaxThreshold
	item.ReorderQuantity = req.ReorderQuantity
	item.CostPerUnit = req.CostPerUnit
	item.DeriveStatus()

	if err := h.DB.Save(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to update inventory item: "+err.Error())
		return
	}
	utils.Success(c, "Inventory item updated successfully", item)
}

// Finance returns revenue totals and transactions for an optional date range.
func (h *OrganizationHandler) Finance(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	query := h.DB.Where("hospital_id = ?", hospital.ID)
	if startDate := c.Query("start_date"); startDate != "" {
		from, err := parseDay(startDate)
		if err != nil {
			utils.BadRequest(c, "Invalid start_date format. Use YYYY-MM-DD")
			return
		}
		query = query.Where("created_at >= ?", from)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		to, err := parseDay(endDate)
		if err != nil {
			utils.BadRequest(c, "Invalid end_date format. Use YYYY-MM-DD")
			return
		}
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var transactions []models.Revenue
	if err := query.Order("created_at desc").Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch revenue: "+err.Error())
		return
	}

	var total, insurance, patientPaid, pending float64
	for _, t := range transactions {
		total += t.Amount
		insurance += t.InsuranceAmount
		patientPaid += t.PatientAmount
		if t.PaymentStatus == models.PaymentPending {
			pending += t.Amount
		}
	}

	utils.Success(c, "Finance report fetched successfully", gin.H{
		"totals": gin.H{
			"revenue":   total,
			"insurance": insurance,
			"patient":   patientPaid,
			"pending":   pending,
		},
		"transactions": transactions,
	})
}

// UpdateProfileRequest represents the request body for updating the
// hospital profile.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile updates the hospital's contact details. Verification state
// is untouched; only admins change it.
func (h *OrganizationHandler) UpdateProfile(c *gin.Context) {
	hospital, ok := h.hospitalForRequest(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Name != "" {
		hospital.Name = req.Name
	}
	if req.Address != "" {
		hospital.Address = req.Address
	}
	if req.City != "" {
		hospital.City = req.City
	}
	if req.Phone != "" {
		hospital.Phone = req.Phone
	}
	if req.Email != "" {
		hospital.Email = req.Email
	}

	if err := h.DB.Save(hospital).Error; err != nil {
		utils.InternalServerError(c, "Failed to update hospital: "+err.Error())
		return
	}
	utils.Success(c, "Hospital profile updated successfully", hospital)
}
