package models

// InventoryStatus reflects stock level relative to the configured thresholds.
type InventoryStatus string

const (
	InventoryGood     InventoryStatus = "Good"
	InventoryLow      InventoryStatus = "Low"
	InventoryCritical InventoryStatus = "Critical"
)

// InventoryItem is a consumable or material tracked per hospital.
type InventoryItem struct {
	BaseModel
	HospitalID string `gorm:"size:36;index;not null" json:"hospitalId"`

	ItemName        string          `gorm:"size:255;not null" json:"itemName"`
	Category        string          `gorm:"size:100" json:"category"`
	Quantity        int             `gorm:"default:0" json:"quantity"`
	Unit            string          `gorm:"size:20;default:'pcs'" json:"unit"` // e.g., pcs, boxes, ml
	MinThreshold    int             `json:"minThreshold"`
	MaxThreshold    int             `json:"maxThreshold"`
	ReorderQuantity int             `json:"reorderQuantity"`
	CostPerUnit     float64         `json:"costPerUnit"`
	Status          InventoryStatus `gorm:"size:20;default:'Good'" json:"status"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
}

// DeriveStatus recomputes Status from Quantity and MinThreshold.
func (i *InventoryItem) DeriveStatus() {
	switch {
	case i.Quantity == 0:
		i.Status = InventoryCritical
	case i.MinThreshold > 0 && i.Quantity <= i.MinThreshold:
		i.Status = InventoryLow
	default:
		i.Status = InventoryGood
	}
}
