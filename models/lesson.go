package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

// Lesson types. A "choice" lesson branches into the lessons listed in
// NextLessons; loops through the graph are allowed so that rituals can be
// repeated.
const (
	LessonLinear = "linear"
	LessonChoice = "choice"
	LessonQuest  = "quest"
	LessonRitual = "ritual"
)

// Lesson is an atomic learning unit. Content is an opaque structured
// document; ChildContent and AdultContent are the audience variants served
// according to the requesting user's theme.
type Lesson struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	ModuleID     string         `gorm:"index;not null" json:"moduleId"`
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"index" json:"slug"`
	Description  string         `gorm:"not null" json:"description"`
	Content      datatypes.JSON `gorm:"type:jsonb;not null" json:"content"`
	Order        int            `gorm:"column:display_order;not null" json:"order"`
	Duration     *int           `json:"duration"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	ChildContent datatypes.JSON `gorm:"type:jsonb" json:"childContent"`
	AdultContent datatypes.JSON `gorm:"type:jsonb" json:"adultContent"`

	// Branching narrative support.
	LessonType    string         `gorm:"default:'linear'" json:"lessonType"`
	Choices       datatypes.JSON `gorm:"type:jsonb" json:"choices"`
	NextLessons   []string       `gorm:"serializer:json" json:"nextLessons"`
	Prerequisites []string       `gorm:"serializer:json" json:"prerequisites"`

	MediaAssets           datatypes.JSON `gorm:"type:jsonb" json:"mediaAssets"`
	DownloadableResources datatypes.JSON `gorm:"type:jsonb" json:"downloadableResources"`
	GamificationData      datatypes.JSON `gorm:"type:jsonb" json:"gamificationData"`
	InteractionElements   datatypes.JSON `gorm:"type:jsonb" json:"interactionElements"`

	PublishAt *time.Time `json:"publishAt,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime:nano" json:"-"`
}

// InsertLesson is the creation payload.
type InsertLesson struct {
	ModuleID     string         `json:"moduleId" validate:"required"`
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description" validate:"required"`
	Content      datatypes.JSON `json:"content" validate:"required"`
	Order        *int           `json:"order" validate:"required"`
	Duration     *int           `json:"duration"`
	IsActive     *bool          `json:"isActive"`
	ChildContent datatypes.JSON `json:"childContent"`
	AdultContent datatypes.JSON `json:"adultContent"`

	LessonType    *string        `json:"lessonType" validate:"omitempty,oneof=linear choice quest ritual"`
	Choices       datatypes.JSON `json:"choices"`
	NextLessons   []string       `json:"nextLessons"`
	Prerequisites []string       `json:"prerequisites"`

	MediaAssets           datatypes.JSON `json:"mediaAssets"`
	DownloadableResources datatypes.JSON `json:"downloadableResources"`
	GamificationData      datatypes.JSON `json:"gamificationData"`
	InteractionElements   datatypes.JSON `json:"interactionElements"`

	PublishAt *time.Time `json:"publishAt"`
}

// NewLesson applies schema defaults and derives the URL slug from the title.
func NewLesson(in InsertLesson) Lesson {
	l := Lesson{
		ModuleID:              in.ModuleID,
		Title:                 in.Title,
		Slug:                  slug.Make(in.Title),
		Description:           in.Description,
		Content:               in.Content,
		Order:                 *in.Order,
		Duration:              in.Duration,
		IsActive:              true,
		ChildContent:          in.ChildContent,
		AdultContent:          in.AdultContent,
		LessonType:            LessonLinear,
		Choices:               in.Choices,
		NextLessons:           in.NextLessons,
		Prerequisites:         in.Prerequisites,
		MediaAssets:           in.MediaAssets,
		DownloadableResources: in.DownloadableResources,
		GamificationData:      in.GamificationData,
		InteractionElements:   in.InteractionElements,
		PublishAt:             in.PublishAt,
	}
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
	if in.LessonType != nil {
		l.LessonType = *in.LessonType
	}
	return l
}
