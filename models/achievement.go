package models

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement describes an unlockable badge, spell or milestone. The
// requirement payload documents the unlock condition for clients; the
// server does not evaluate it. Grants are made explicitly through the
// grant endpoint.
type Achievement struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"not null" json:"description"`
	Icon         *string        `json:"icon"`
	Type         string         `gorm:"not null" json:"type"`
	Requirement  datatypes.JSON `gorm:"type:jsonb;not null" json:"requirement"`
	ChildVersion datatypes.JSON `gorm:"type:jsonb" json:"childVersion"`
	AdultVersion datatypes.JSON `gorm:"type:jsonb" json:"adultVersion"`
}

// UserAchievement joins a user to an earned achievement.
type UserAchievement struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string    `gorm:"index;not null" json:"userId"`
	AchievementID string    `gorm:"index;not null" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}

// InsertAchievement is the creation payload.
type InsertAchievement struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description" validate:"required"`
	Icon         *string        `json:"icon"`
	Type         string         `json:"type" validate:"required"`
	Requirement  datatypes.JSON `json:"requirement" validate:"required"`
	ChildVersion datatypes.JSON `json:"childVersion"`
	AdultVersion datatypes.JSON `json:"adultVersion"`
}

// NewAchievement builds the record from a validated payload.
func NewAchievement(in InsertAchievement) Achievement {
	return Achievement{
		Title:        in.Title,
		Description:  in.Description,
		Icon:         in.Icon,
		Type:         in.Type,
		Requirement:  in.Requirement,
		ChildVersion: in.ChildVersion,
		AdultVersion: in.AdultVersion,
	}
}
