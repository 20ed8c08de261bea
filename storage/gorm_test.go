package storage

import (
	"fmt"
	"testing"
	"time"

	"academy-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newGormStore runs the contract tests against an in-memory sqlite
// database; production uses postgres through the same code path.
func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	s := NewGormStore(db)
	require.NoError(t, s.Migrate())
	return s
}

func TestGormStoreRealmCRUD(t *testing.T) {
	s := newGormStore(t)

	r := insertRealm(t, s, "Fire Realm", 3)
	assert.NotEmpty(t, r.ID)
	assert.True(t, r.IsActive)
	assert.Equal(t, "fire-realm", r.Slug)

	got, err := s.GetRealm(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	updated, err := s.UpdateRealm(r.ID, Partial{"title": "Flame Realm"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Flame Realm", updated.Title)
	assert.Equal(t, 3, updated.Order)

	missing, err := s.GetRealm("nope")
	require.NoError(t, err)
	assert.Nil(t, missing, "absence is a sentinel, not an error")

	ok, err := s.DeleteRealm(r.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteRealm(r.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormStoreOrdering(t *testing.T) {
	s := newGormStore(t)

	insertRealm(t, s, "Water", 2)
	insertRealm(t, s, "Earth", 1)
	insertRealm(t, s, "Air A", 3)
	insertRealm(t, s, "Air B", 3)

	realms, err := s.GetRealms()
	require.NoError(t, err)
	require.Len(t, realms, 4)
	assert.Equal(t, "Earth", realms[0].Title)
	assert.Equal(t, "Water", realms[1].Title)
	assert.Equal(t, "Air A", realms[2].Title)
	assert.Equal(t, "Air B", realms[3].Title)
}

func TestGormStoreProgressCompletion(t *testing.T) {
	s := newGormStore(t)

	p, err := s.CreateUserProgress(models.InsertUserProgress{UserID: "u1", LessonID: "l1"})
	require.NoError(t, err)
	assert.Nil(t, p.CompletedAt)

	done, err := s.UpdateUserProgress(p.ID, Partial{"completed": true, "progress": 100})
	require.NoError(t, err)
	require.NotNil(t, done)
	require.NotNil(t, done.CompletedAt)
	assert.False(t, done.CompletedAt.Before(done.StartedAt))

	byLesson, err := s.GetUserProgressByLesson("u1", "l1")
	require.NoError(t, err)
	require.NotNil(t, byLesson)
	assert.True(t, byLesson.Completed)
}

func TestGormStoreCompletedAtIsServerControlled(t *testing.T) {
	s := newGormStore(t)

	p, err := s.CreateUserProgress(models.InsertUserProgress{UserID: "u1", LessonID: "l1"})
	require.NoError(t, err)

	patched, err := s.UpdateUserProgress(p.ID, Partial{"progress": 40, "completedAt": "2030-01-01T00:00:00Z"})
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Nil(t, patched.CompletedAt, "a record never completed has no completion time")
}

func TestGormStoreGrantIdempotent(t *testing.T) {
	s := newGormStore(t)

	a, err := s.CreateAchievement(models.InsertAchievement{
		Title: "First Steps", Description: "d", Type: "milestone",
		Requirement: mustJSON(map[string]any{"lessonCount": 1}),
	})
	require.NoError(t, err)

	g1, err := s.GrantAchievement("u1", a.ID)
	require.NoError(t, err)
	g2, err := s.GrantAchievement("u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID)

	earned, err := s.GetUserAchievements("u1")
	require.NoError(t, err)
	assert.Len(t, earned, 1)
}

func TestGormStoreCascadeDelete(t *testing.T) {
	s := newGormStore(t)
	s.CascadeDelete = true

	realm := insertRealm(t, s, "Earth", 1)
	mod := insertModule(t, s, realm.ID, "Foundations", 1)
	lesson := insertLesson(t, s, mod.ID, "Grounding", 1)

	ok, err := s.DeleteRealm(realm.ID)
	require.NoError(t, err)
	require.True(t, ok)

	gone, err := s.GetModule(mod.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	goneLesson, err := s.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Nil(t, goneLesson)
}

func TestGormStoreDueContent(t *testing.T) {
	s := newGormStore(t)
	past := time.Now().Add(-time.Hour)

	due, err := s.CreateRealm(models.InsertRealm{
		Title: "Hidden", Description: "d", Element: "spirit",
		Order: ptr(9), IsActive: ptr(false), PublishAt: &past,
	})
	require.NoError(t, err)

	realms, err := s.DueRealms(time.Now())
	require.NoError(t, err)
	require.Len(t, realms, 1)
	assert.Equal(t, due.ID, realms[0].ID)

	_, err = s.UpdateRealm(due.ID, Partial{"isActive": true, "publishAt": nil})
	require.NoError(t, err)

	realms, err = s.DueRealms(time.Now())
	require.NoError(t, err)
	assert.Empty(t, realms)
}
