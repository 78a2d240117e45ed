package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationToken is a one-time secret proving control of a registered
// email address. It is deleted on first successful redemption; there is no
// expiry, so unredeemed tokens linger until consumed.
type VerificationToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `json:"accountId" gorm:"type:char(36);not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *VerificationToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
