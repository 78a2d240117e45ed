package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrganizationType classifies who is running a campaign.
type OrganizationType string

const (
	OrgIndividual OrganizationType = "individual"
	OrgNonprofit  OrganizationType = "nonprofit"
	OrgBusiness   OrganizationType = "business"
	OrgCommunity  OrganizationType = "community"
)

// Campaign duration bounds in days.
const (
	MinDuration = 1
	MaxDuration = 90
)

// MaxShortDescription is the character limit for the card blurb.
const MaxShortDescription = 150

// Campaign represents a fundraising campaign with its running totals.
// Raised and Backers only ever increase, and only through donations.
type Campaign struct {
	ID               uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Title            string           `json:"title" gorm:"size:255;not null"`
	Goal             decimal.Decimal  `json:"goal" gorm:"type:decimal(20,2);not null"`
	Duration         int              `json:"duration" gorm:"not null"`
	Location         string           `json:"location,omitempty" gorm:"size:255"`
	ShortDescription string           `json:"shortDescription" gorm:"size:150;not null"`
	FullDescription  string           `json:"fullDescription" gorm:"type:text;not null"`
	CreatorName      string           `json:"creatorName" gorm:"size:255;not null;index"`
	OrganizationType OrganizationType `json:"organizationType" gorm:"type:varchar(20);not null;default:'individual'"`
	Image            string           `json:"image,omitempty" gorm:"size:512"`
	CreatedBy        *uuid.UUID       `json:"createdBy,omitempty" gorm:"type:char(36);index"`
	IsActive         bool             `json:"isActive" gorm:"default:true;index"`
	Raised           decimal.Decimal  `json:"raised" gorm:"type:decimal(20,2);not null;default:0"`
	Backers          int              `json:"backers" gorm:"not null;default:0"`
	DaysLeft         int              `json:"daysLeft"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// CampaignSummary is the listing projection; the full description is excluded.
type CampaignSummary struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	CreatorName      string           `json:"creatorName"`
	Location         string           `json:"location,omitempty"`
	ShortDescription string           `json:"shortDescription"`
	Goal             decimal.Decimal  `json:"goal"`
	Raised           decimal.Decimal  `json:"raised"`
	Backers          int              `json:"backers"`
	DaysLeft         int              `json:"daysLeft"`
	OrganizationType OrganizationType `json:"organizationType"`
	Image            string           `json:"image,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ValidOrganizationType reports whether s is one of the allowed values.
func ValidOrganizationType(s string) bool {
	switch OrganizationType(s) {
	case OrgIndividual, OrgNonprofit, OrgBusiness, OrgCommunity:
		return true
	}
	return false
}

// RemainingDays derives daysLeft from the creation time and duration,
// rounded up and floored at zero. If the campaign has not been persisted
// yet, now doubles as the creation time, so the result is the duration.
func (c *Campaign) RemainingDays(now time.Time) int {
	start := c.CreatedAt
	if start.IsZero() {
		start = now
	}
	end := start.Add(time.Duration(c.Duration) * 24 * time.Hour)
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// BeforeCreate sets UUID before creating the record.
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes DaysLeft on every write. Reads never recompute it,
// so the stored value drifts until the next save.
func (c *Campaign) BeforeSave(tx *gorm.DB) error {
	if c.Duration > 0 {
		c.DaysLeft = c.RemainingDays(time.Now())
	}
	return nil
}

// Summary projects the campaign to its listing shape.
func (c *Campaign) Summary() CampaignSummary {
	return CampaignSummary{
		ID:               c.ID,
		Title:            c.Title,
		CreatorName:      c.CreatorName,
		Location:         c.Location,
		ShortDescription: c.ShortDescription,
		Goal:             c.Goal,
		Raised:           c.Raised,
		Backers:          c.Backers,
		DaysLeft:         c.DaysLeft,
		OrganizationType: c.OrganizationType,
		Image:            c.Image,
		CreatedAt:        c.CreatedAt,
	}
}
