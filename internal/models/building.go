package models

import (
	"time"
)

// Campus represents a land holding that groups one or more sites.
type Campus struct {
	CampusID   uint64 `gorm:"primaryKey;autoIncrement" json:"campusId"`
	CampusName string `gorm:"uniqueIndex;size:255;not null" json:"campusName"`
	Market     string `gorm:"size:255" json:"market"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Sites      []Site `gorm:"foreignKey:CampusID" json:"sites,omitempty"`
}

// Site represents a powered shell location within a campus.
type Site struct {
	SiteID    uint64 `gorm:"primaryKey;autoIncrement" json:"siteId"`
	CampusID  uint64 `gorm:"not null;index" json:"campusId"`
	SiteName  string `gorm:"size:255;not null" json:"siteName"`
	Grid      string `gorm:"size:32" json:"grid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Campus    *Campus    `gorm:"foreignKey:CampusID" json:"campus,omitempty"`
	Buildings []Building `gorm:"foreignKey:SiteID" json:"buildings,omitempty"`
}

// Building is the valued asset: a data-center building with its power
// capacity, lifecycle attributes, and per-building valuation overrides.
// Nullable rate columns fall back to the global defaults when null.
type Building struct {
	BuildingID       uint64     `gorm:"primaryKey;autoIncrement" json:"buildingId"`
	SiteID           uint64     `gorm:"not null;index" json:"siteId"`
	BuildingName     string     `gorm:"size:255;not null" json:"buildingName"`
	GrossMw          *float64   `json:"grossMw"`
	ItMw             *float64   `json:"itMw"`
	Pue              *float64   `json:"pue"`
	Grid             string     `gorm:"size:32;index" json:"grid"`
	OwnershipStatus  string     `gorm:"size:32" json:"ownershipStatus"`
	DevelopmentPhase string     `gorm:"size:32;index" json:"developmentPhase"`
	Confidence       string     `gorm:"size:32" json:"confidence"`
	DatacenterTier   string     `gorm:"size:16" json:"datacenterTier"`
	EnergizationDate *time.Time `json:"energizationDate"`
	FidoodleFactor   float64    `gorm:"not null;default:1" json:"fidoodleFactor"`

	CapRate            *float64 `json:"capRate"`
	ExitCapRate        *float64 `json:"exitCapRate"`
	TerminalGrowthRate *float64 `json:"terminalGrowthRate"`
	DiscountRate       *float64 `json:"discountRate"`

	// FactorOverrides holds the per-factor manual overrides as a JSON object
	// keyed by factor name; a missing key means "use the auto value".
	FactorOverrides JSON `gorm:"type:json" json:"factorOverrides"`

	// RowVersion increments on every successful write and backs the optional
	// optimistic version check on updates.
	RowVersion uint64 `gorm:"not null;default:0" json:"rowVersion"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	Site       *Site       `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	UsePeriods []UsePeriod `gorm:"foreignKey:BuildingID" json:"usePeriods,omitempty"`
}

// TableName overrides the table name for Campus
func (Campus) TableName() string {
	return "campuses"
}

// TableName overrides the table name for Site
func (Site) TableName() string {
	return "sites"
}

// TableName overrides the table name for Building
func (Building) TableName() string {
	return "buildings"
}
