package models

import "time"

type BeneficiaryStatus string

const (
	BeneficiaryActive   BeneficiaryStatus = "ACTIVE"
	BeneficiaryInactive BeneficiaryStatus = "INACTIVE"
)

// Beneficiary is one registered aid recipient. Code is the human-facing
// identifier printed on distribution records (BEN-000001 style).
type Beneficiary struct {
	ID              int64
	Code            string
	FullName        string
	BirthDate       *time.Time
	Gender          string
	Barangay        string
	ContactNumber   string
	IsHouseholdHead bool
	FamilySize      int
	IsPWD           bool
	IsSeniorCitizen bool
	IsSoloParent    bool
	PriorityLevel   int
	Status          BeneficiaryStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BeneficiaryFilter narrows list queries; zero values mean no filter.
type BeneficiaryFilter struct {
	Search   string
	Barangay string
	Status   BeneficiaryStatus
}
