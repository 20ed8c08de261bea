package models

import (
	"time"

	"gorm.io/datatypes"
)

// JournalEntry is a user's free-text reflection, optionally tied to a
// lesson or written against a prompt. UpdatedAt is refreshed on every
// mutation.
type JournalEntry struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string         `gorm:"index;not null" json:"userId"`
	LessonID    *string        `gorm:"index" json:"lessonId"`
	Title       *string        `json:"title"`
	Content     string         `gorm:"not null" json:"content"`
	Prompt      *string        `json:"prompt"`
	EntryType   string         `gorm:"default:'reflection'" json:"entryType"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	Mood        *string        `json:"mood"`
	IsPrivate   bool           `gorm:"default:true" json:"isPrivate"`
	Attachments datatypes.JSON `gorm:"type:jsonb" json:"attachments"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// InsertJournalEntry is the creation payload.
type InsertJournalEntry struct {
	UserID      string         `json:"userId" validate:"required"`
	LessonID    *string        `json:"lessonId"`
	Title       *string        `json:"title"`
	Content     string         `json:"content" validate:"required"`
	Prompt      *string        `json:"prompt"`
	EntryType   *string        `json:"entryType" validate:"omitempty,oneof=reflection ritual dream vision"`
	Tags        []string       `json:"tags"`
	Mood        *string        `json:"mood"`
	IsPrivate   *bool          `json:"isPrivate"`
	Attachments datatypes.JSON `json:"attachments"`
}

// NewJournalEntry applies schema defaults and stamps both timestamps.
func NewJournalEntry(in InsertJournalEntry) JournalEntry {
	now := time.Now()
	e := JournalEntry{
		UserID:      in.UserID,
		LessonID:    in.LessonID,
		Title:       in.Title,
		Content:     in.Content,
		Prompt:      in.Prompt,
		EntryType:   "reflection",
		Tags:        in.Tags,
		Mood:        in.Mood,
		IsPrivate:   true,
		Attachments: in.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.EntryType != nil {
		e.EntryType = *in.EntryType
	}
	if in.IsPrivate != nil {
		e.IsPrivate = *in.IsPrivate
	}
	return e
}
