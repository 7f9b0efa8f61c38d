package models

import "time"

// Distribution records one hand-out of an inventory item to a
// beneficiary. ReferenceNo is a generated UUID used on receipts.
type Distribution struct {
	ID              int64
	ReferenceNo     string
	BeneficiaryID   int64
	BeneficiaryName string
	ItemID          int64
	ItemName        string
	Quantity        float64
	DistributedBy   int64
	Remarks         string
	CreatedAt       time.Time
}

// DashboardStats aggregates the landing-screen counters.
type DashboardStats struct {
	TotalBeneficiaries int
	DistributionsToday int
	LowStockItems      int
}
