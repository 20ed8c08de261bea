package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProgress ties one user to one lesson. StartedAt is set at creation;
// CompletedAt is set by the storage layer whenever an update marks the
// record completed, overriding any client-supplied value. The progress
// percentage is stored as given and not clamped.
type UserProgress struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string     `gorm:"index;not null" json:"userId"`
	LessonID    string     `gorm:"index;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Progress    int        `gorm:"default:0" json:"progress"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       *string    `json:"notes"`
	Badges      []string   `gorm:"serializer:json" json:"badges"`

	// Branching / interaction tracking.
	ChoicesMade      datatypes.JSON `gorm:"type:jsonb" json:"choicesMade"`
	ExperiencePoints int            `gorm:"default:0" json:"experiencePoints"`
	PathTaken        []string       `gorm:"serializer:json" json:"pathTaken"`
	TimeSpent        int            `gorm:"default:0" json:"timeSpent"`
	InteractionData  datatypes.JSON `gorm:"type:jsonb" json:"interactionData"`
}

// InsertUserProgress is the creation payload.
type InsertUserProgress struct {
	UserID           string         `json:"userId" validate:"required"`
	LessonID         string         `json:"lessonId" validate:"required"`
	Completed        *bool          `json:"completed"`
	Progress         *int           `json:"progress"`
	Notes            *string        `json:"notes"`
	Badges           []string       `json:"badges"`
	ChoicesMade      datatypes.JSON `json:"choicesMade"`
	ExperiencePoints *int           `json:"experiencePoints"`
	PathTaken        []string       `json:"pathTaken"`
	TimeSpent        *int           `json:"timeSpent"`
	InteractionData  datatypes.JSON `json:"interactionData"`
}

// NewUserProgress applies schema defaults. CompletedAt is set only when the
// record is created already completed.
func NewUserProgress(in InsertUserProgress) UserProgress {
	now := time.Now()
	p := UserProgress{
		UserID:          in.UserID,
		LessonID:        in.LessonID,
		StartedAt:       now,
		Notes:           in.Notes,
		Badges:          in.Badges,
		ChoicesMade:     in.ChoicesMade,
		PathTaken:       in.PathTaken,
		InteractionData: in.InteractionData,
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if in.Completed != nil {
		p.Completed = *in.Completed
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
	if in.ExperiencePoints != nil {
		p.ExperiencePoints = *in.ExperiencePoints
	}
	if in.TimeSpent != nil {
		p.TimeSpent = *in.TimeSpent
	}
	if p.Completed {
		p.CompletedAt = &now
	}
	return p
}
