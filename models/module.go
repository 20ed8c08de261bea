package models

import "time"

// Module is an ordered grouping of lessons inside a realm. Prerequisites
// hold ids of modules or achievements; they are advisory and not enforced
// at write time.
type Module struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	RealmID       string    `gorm:"index;not null" json:"realmId"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Order         int       `gorm:"column:display_order;not null" json:"order"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	Prerequisites []string  `gorm:"serializer:json" json:"prerequisites"`
	CreatedAt     time.Time `gorm:"autoCreateTime:nano" json:"-"`
}

// InsertModule is the creation payload.
type InsertModule struct {
	RealmID       string   `json:"realmId" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Order         *int     `json:"order" validate:"required"`
	IsActive      *bool    `json:"isActive"`
	Prerequisites []string `json:"prerequisites"`
}

// NewModule applies schema defaults.
func NewModule(in InsertModule) Module {
	m := Module{
		RealmID:       in.RealmID,
		Title:         in.Title,
		Description:   in.Description,
		Order:         *in.Order,
		IsActive:      true,
		Prerequisites: in.Prerequisites,
	}
	if m.Prerequisites == nil {
		m.Prerequisites = []string{}
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	return m
}
