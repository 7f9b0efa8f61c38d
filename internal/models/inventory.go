package models

import "time"

type ItemStatus string

const (
	ItemActive       ItemStatus = "ACTIVE"
	ItemInactive     ItemStatus = "INACTIVE"
	ItemDiscontinued ItemStatus = "DISCONTINUED"
)

// StockMovementType distinguishes receipts from issues.
type StockMovementType string

const (
	StockIn  StockMovementType = "IN"
	StockOut StockMovementType = "OUT"
)

// InventoryItem is one stocked relief good.
type InventoryItem struct {
	ID              int64
	Code            string
	Name            string
	Category        string
	UnitOfMeasure   string
	CurrentStock    float64
	MinimumStock    float64
	UnitCost        float64
	StorageLocation string
	Status          ItemStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock reports whether current stock has fallen to or below the
// configured minimum level.
func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}

// InventoryFilter narrows list queries; zero values mean no filter.
type InventoryFilter struct {
	Search   string
	Category string
	Status   ItemStatus
}
