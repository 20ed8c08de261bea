package models

import (
	"time"
)

// User is an academy member. Theme selects the content variant served to
// them ("child" or "adult"). Passwords are bcrypt hashes and never leave
// the process.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"isAdmin"`
	Theme     string    `gorm:"default:'adult'" json:"theme"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// InsertUser is the registration payload.
type InsertUser struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	IsAdmin  *bool   `json:"isAdmin" validate:"omitempty"`
	Theme    *string `json:"theme" validate:"omitempty,oneof=child adult"`
}

// NewUser applies schema defaults. The caller is responsible for hashing
// the password before the record is stored.
func NewUser(in InsertUser) User {
	u := User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Theme:    "adult",
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.Theme != nil {
		u.Theme = *in.Theme
	}
	return u
}
