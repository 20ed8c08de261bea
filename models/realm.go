package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

// Realm is a top-level curriculum category themed by element
// (earth, water, fire, air, spirit). Realms own modules.
type Realm struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Slug            string         `gorm:"index" json:"slug"`
	Description     string         `gorm:"not null" json:"description"`
	Element         string         `gorm:"not null" json:"element"`
	BackgroundImage *string        `json:"backgroundImage"`
	Icon            *string        `json:"icon"`
	Order           int            `gorm:"column:display_order;not null" json:"order"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	ChildTheme      datatypes.JSON `gorm:"type:jsonb" json:"childTheme"`
	AdultTheme      datatypes.JSON `gorm:"type:jsonb" json:"adultTheme"`
	PublishAt       *time.Time     `json:"publishAt,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime:nano" json:"-"`
}

// InsertRealm is the creation payload. Order is a pointer so that an
// explicit 0 passes the required check while an absent field fails it.
type InsertRealm struct {
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description" validate:"required"`
	Element         string         `json:"element" validate:"required,oneof=earth water fire air spirit"`
	BackgroundImage *string        `json:"backgroundImage"`
	Icon            *string        `json:"icon"`
	Order           *int           `json:"order" validate:"required"`
	IsActive        *bool          `json:"isActive"`
	ChildTheme      datatypes.JSON `json:"childTheme"`
	AdultTheme      datatypes.JSON `json:"adultTheme"`
	PublishAt       *time.Time     `json:"publishAt"`
}

// NewRealm applies schema defaults and derives the URL slug from the title.
func NewRealm(in InsertRealm) Realm {
	r := Realm{
		Title:           in.Title,
		Slug:            slug.Make(in.Title),
		Description:     in.Description,
		Element:         in.Element,
		BackgroundImage: in.BackgroundImage,
		Icon:            in.Icon,
		Order:           *in.Order,
		IsActive:        true,
		ChildTheme:      in.ChildTheme,
		AdultTheme:      in.AdultTheme,
		PublishAt:       in.PublishAt,
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return r
}
