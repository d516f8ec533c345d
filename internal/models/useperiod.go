package models

import (
	"time"
)

// UsePeriod assigns some or all of a building's IT capacity to a use type
// and optional tenant. A current period participates in the building's
// capacity allocation; a non-current period is a planned future transition.
// A nil MwAllocation means the period consumes the whole remaining capacity.
type UsePeriod struct {
	UsePeriodID  uint64     `gorm:"primaryKey;autoIncrement" json:"usePeriodId"`
	BuildingID   uint64     `gorm:"not null;index:idx_use_periods_building" json:"buildingId"`
	UseType      string     `gorm:"size:32;not null" json:"useType"`
	Tenant       *string    `gorm:"size:255" json:"tenant"`
	// No column default here: GORM skips zero values for defaulted columns
	// on insert, and a transition must land as is_current = false.
	IsCurrent    bool       `gorm:"not null" json:"isCurrent"`
	MwAllocation *float64   `json:"mwAllocation"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`

	// Lease terms. Dollar figures in millions; NoiPct is a percentage.
	LeaseValueM    *float64   `json:"leaseValueM"`
	LeaseYears     *float64   `json:"leaseYears"`
	AnnualRevM     *float64   `json:"annualRevM"`
	NoiPct         *float64   `json:"noiPct"`
	NoiAnnualM     *float64   `json:"noiAnnualM"`
	LeaseStart     *time.Time `json:"leaseStart"`
	LeaseStructure string     `gorm:"size:32" json:"leaseStructure"`

	LeaseNotes       string `gorm:"size:1024" json:"leaseNotes"`
	AllocationMethod string `gorm:"size:32" json:"allocationMethod"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for UsePeriod
func (UsePeriod) TableName() string {
	return "use_periods"
}
