package models

import (
	"time"

	"gorm.io/datatypes"
)

// AltarElement is an item placed on a user's virtual altar (candle,
// crystal, plant, ...). ElementData carries its appearance and position.
type AltarElement struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string         `gorm:"index;not null" json:"userId"`
	Element     string         `gorm:"not null" json:"element"`
	ElementData datatypes.JSON `gorm:"type:jsonb;not null" json:"elementData"`
	UnlockedAt  time.Time      `json:"unlockedAt"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
}

// InsertAltarElement is the creation payload.
type InsertAltarElement struct {
	UserID      string         `json:"userId" validate:"required"`
	Element     string         `json:"element" validate:"required"`
	ElementData datatypes.JSON `json:"elementData" validate:"required"`
	IsActive    *bool          `json:"isActive"`
}

// NewAltarElement applies schema defaults and stamps the unlock time.
func NewAltarElement(in InsertAltarElement) AltarElement {
	a := AltarElement{
		UserID:      in.UserID,
		Element:     in.Element,
		ElementData: in.ElementData,
		UnlockedAt:  time.Now(),
		IsActive:    true,
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	return a
}
