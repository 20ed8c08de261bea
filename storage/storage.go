// Package storage persists the academy's entities. Absence is a sentinel,
// never an error: lookups return (nil, nil) for a missing id and deletes
// return false. Errors are reserved for the backing store itself.
package storage

import (
	"time"

	"academy-server/models"
)

// Partial is an untyped update body. It is merged field-by-field onto the
// stored record; an explicit JSON null clears an optional field.
type Partial = map[string]any

// Store is the repository contract the route layer depends on. Both the
// in-memory store and the database-backed store satisfy it.
type Store interface {
	// Users
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(in models.InsertUser) (*models.User, error)
	UpdateUser(id string, partial Partial) (*models.User, error)

	// Realms
	GetRealms() ([]models.Realm, error)
	GetRealm(id string) (*models.Realm, error)
	CreateRealm(in models.InsertRealm) (*models.Realm, error)
	UpdateRealm(id string, partial Partial) (*models.Realm, error)
	DeleteRealm(id string) (bool, error)

	// Modules
	GetModulesByRealm(realmID string) ([]models.Module, error)
	GetModule(id string) (*models.Module, error)
	CreateModule(in models.InsertModule) (*models.Module, error)
	UpdateModule(id string, partial Partial) (*models.Module, error)
	DeleteModule(id string) (bool, error)

	// Lessons
	GetLessonsByModule(moduleID string) ([]models.Lesson, error)
	GetLesson(id string) (*models.Lesson, error)
	CreateLesson(in models.InsertLesson) (*models.Lesson, error)
	UpdateLesson(id string, partial Partial) (*models.Lesson, error)
	DeleteLesson(id string) (bool, error)

	// Progress
	GetUserProgress(userID string) ([]models.UserProgress, error)
	GetUserProgressByLesson(userID, lessonID string) (*models.UserProgress, error)
	CreateUserProgress(in models.InsertUserProgress) (*models.UserProgress, error)
	UpdateUserProgress(id string, partial Partial) (*models.UserProgress, error)

	// Achievements
	GetAchievements() ([]models.Achievement, error)
	GetAchievement(id string) (*models.Achievement, error)
	GetUserAchievements(userID string) ([]models.Achievement, error)
	CreateAchievement(in models.InsertAchievement) (*models.Achievement, error)
	// GrantAchievement is idempotent: a second grant of the same achievement
	// returns the existing earned record.
	GrantAchievement(userID, achievementID string) (*models.UserAchievement, error)

	// Journal
	GetUserJournalEntries(userID string) ([]models.JournalEntry, error)
	GetJournalEntry(id string) (*models.JournalEntry, error)
	CreateJournalEntry(in models.InsertJournalEntry) (*models.JournalEntry, error)
	UpdateJournalEntry(id string, partial Partial) (*models.JournalEntry, error)
	DeleteJournalEntry(id string) (bool, error)

	// Altar
	GetUserAltarElements(userID string) ([]models.AltarElement, error)
	GetAltarElement(id string) (*models.AltarElement, error)
	CreateAltarElement(in models.InsertAltarElement) (*models.AltarElement, error)
	UpdateAltarElement(id string, partial Partial) (*models.AltarElement, error)

	// Scheduled publishing: inactive content whose publishAt is due.
	DueRealms(now time.Time) ([]models.Realm, error)
	DueLessons(now time.Time) ([]models.Lesson, error)
}
