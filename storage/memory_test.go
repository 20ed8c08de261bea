package storage

import (
	"testing"
	"time"

	"academy-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertRealm(t *testing.T, s Store, title string, order int) *models.Realm {
	t.Helper()
	r, err := s.CreateRealm(models.InsertRealm{
		Title:       title,
		Description: "d",
		Element:     "earth",
		Order:       ptr(order),
	})
	require.NoError(t, err)
	return r
}

func insertModule(t *testing.T, s Store, realmID, title string, order int) *models.Module {
	t.Helper()
	m, err := s.CreateModule(models.InsertModule{
		RealmID:     realmID,
		Title:       title,
		Description: "d",
		Order:       ptr(order),
	})
	require.NoError(t, err)
	return m
}

func insertLesson(t *testing.T, s Store, moduleID, title string, order int) *models.Lesson {
	t.Helper()
	l, err := s.CreateLesson(models.InsertLesson{
		ModuleID:    moduleID,
		Title:       title,
		Description: "d",
		Content:     mustJSON(map[string]any{"blocks": []any{}}),
		Order:       ptr(order),
	})
	require.NoError(t, err)
	return l
}

func TestMemoryStoreRealmCRUD(t *testing.T) {
	s := NewMemoryStore()

	r := insertRealm(t, s, "Fire Realm", 3)
	assert.NotEmpty(t, r.ID)
	assert.True(t, r.IsActive)
	assert.Equal(t, "fire-realm", r.Slug)

	got, err := s.GetRealm(r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Fire Realm", got.Title)

	updated, err := s.UpdateRealm(r.ID, Partial{"title": "Flame Realm", "id": "tampered"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Flame Realm", updated.Title)
	assert.Equal(t, r.ID, updated.ID, "id is immutable")
	assert.Equal(t, 3, updated.Order, "untouched fields survive the merge")

	missing, err := s.GetRealm("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := s.DeleteRealm(r.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := s.GetRealm(r.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	ok, err = s.DeleteRealm(r.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreOrderingWithTies(t *testing.T) {
	s := NewMemoryStore()

	insertRealm(t, s, "Water", 2)
	insertRealm(t, s, "Earth", 1)
	insertRealm(t, s, "Air A", 3)
	insertRealm(t, s, "Air B", 3)

	realms, err := s.GetRealms()
	require.NoError(t, err)
	require.Len(t, realms, 4)
	assert.Equal(t, "Earth", realms[0].Title)
	assert.Equal(t, "Water", realms[1].Title)
	assert.Equal(t, "Air A", realms[2].Title, "ties resolve by insertion order")
	assert.Equal(t, "Air B", realms[3].Title)
}

func TestMemoryStoreModulesAndLessonsByParent(t *testing.T) {
	s := NewMemoryStore()
	earth := insertRealm(t, s, "Earth", 1)
	water := insertRealm(t, s, "Water", 2)

	m2 := insertModule(t, s, earth.ID, "Second", 2)
	m1 := insertModule(t, s, earth.ID, "First", 1)
	insertModule(t, s, water.ID, "Other realm", 1)

	modules, err := s.GetModulesByRealm(earth.ID)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, m1.ID, modules[0].ID)
	assert.Equal(t, m2.ID, modules[1].ID)

	insertLesson(t, s, m1.ID, "B", 2)
	insertLesson(t, s, m1.ID, "A", 1)
	lessons, err := s.GetLessonsByModule(m1.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "A", lessons[0].Title)

	empty, err := s.GetLessonsByModule("no-such-module")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreDeleteDoesNotCascadeByDefault(t *testing.T) {
	s := NewMemoryStore()
	realm := insertRealm(t, s, "Earth", 1)
	mod := insertModule(t, s, realm.ID, "Foundations", 1)
	lesson := insertLesson(t, s, mod.ID, "Grounding", 1)

	ok, err := s.DeleteRealm(realm.ID)
	require.NoError(t, err)
	require.True(t, ok)

	orphan, err := s.GetModule(mod.ID)
	require.NoError(t, err)
	assert.NotNil(t, orphan, "children are orphaned, not deleted")

	still, err := s.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestMemoryStoreCascadeDelete(t *testing.T) {
	s := NewMemoryStore()
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

func TestMemoryStoreUserLookups(t *testing.T) {
	s := NewMemoryStore()

	u, err := s.CreateUser(models.InsertUser{
		Username: "sage",
		Email:    "sage@academy.example",
		Password: "hashed-elsewhere",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "adult", u.Theme)
	assert.False(t, u.IsAdmin)

	byEmail, err := s.GetUserByEmail("sage@academy.example")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := s.GetUserByUsername("sage")
	require.NoError(t, err)
	require.NotNil(t, byName)

	nobody, err := s.GetUserByEmail("ghost@academy.example")
	require.NoError(t, err)
	assert.Nil(t, nobody)

	themed, err := s.UpdateUser(u.ID, Partial{"theme": "child"})
	require.NoError(t, err)
	require.NotNil(t, themed)
	assert.Equal(t, "child", themed.Theme)
}

func TestMemoryStoreProgressLifecycle(t *testing.T) {
	s := NewMemoryStore()

	p, err := s.CreateUserProgress(models.InsertUserProgress{UserID: "u1", LessonID: "l1"})
	require.NoError(t, err)
	assert.False(t, p.Completed)
	assert.Equal(t, 0, p.Progress)
	assert.False(t, p.StartedAt.IsZero())
	assert.Nil(t, p.CompletedAt)
	assert.Equal(t, []string{}, p.Badges)

	byLesson, err := s.GetUserProgressByLesson("u1", "l1")
	require.NoError(t, err)
	require.NotNil(t, byLesson)
	assert.Equal(t, p.ID, byLesson.ID)

	done, err := s.UpdateUserProgress(p.ID, Partial{"progress": 100, "completed": true, "completedAt": "1999-01-01T00:00:00Z"})
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.True(t, done.Completed)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.CompletedAt, "completing stamps completedAt")
	assert.False(t, done.CompletedAt.Before(done.StartedAt), "completedAt >= startedAt")
	assert.True(t, done.CompletedAt.After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		"server clock wins over the client-supplied completedAt")

	firstCompletion := *done.CompletedAt

	undone, err := s.UpdateUserProgress(p.ID, Partial{"completed": false})
	require.NoError(t, err)
	require.NotNil(t, undone)
	assert.False(t, undone.Completed)
	require.NotNil(t, undone.CompletedAt, "un-completing keeps the first completion time")
	assert.Equal(t, firstCompletion, *undone.CompletedAt)

	missing, err := s.UpdateUserProgress("nope", Partial{"completed": true})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreCompletedAtIsServerControlled(t *testing.T) {
	s := NewMemoryStore()

	p, err := s.CreateUserProgress(models.InsertUserProgress{UserID: "u1", LessonID: "l1"})
	require.NoError(t, err)

	patched, err := s.UpdateUserProgress(p.ID, Partial{"progress": 40, "completedAt": "2030-01-01T00:00:00Z"})
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, 40, patched.Progress)
	assert.Nil(t, patched.CompletedAt, "a record never completed has no completion time")

	done, err := s.UpdateUserProgress(p.ID, Partial{"completed": true})
	require.NoError(t, err)
	firstCompletion := *done.CompletedAt

	patched, err = s.UpdateUserProgress(p.ID, Partial{"completedAt": nil})
	require.NoError(t, err)
	require.NotNil(t, patched.CompletedAt, "clients cannot clear a completion time either")
	assert.Equal(t, firstCompletion, *patched.CompletedAt)
}

func TestMemoryStoreAchievements(t *testing.T) {
	s := NewMemoryStore()

	a, err := s.CreateAchievement(models.InsertAchievement{
		Title:       "First Steps",
		Description: "Complete your first lesson",
		Type:        "milestone",
		Requirement: mustJSON(map[string]any{"lessonCount": 1}),
	})
	require.NoError(t, err)

	earned, err := s.GetUserAchievements("u1")
	require.NoError(t, err)
	assert.Empty(t, earned)

	g1, err := s.GrantAchievement("u1", a.ID)
	require.NoError(t, err)
	g2, err := s.GrantAchievement("u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID, "second grant returns the original record")

	earned, err = s.GetUserAchievements("u1")
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, a.ID, earned[0].ID)
}

func TestMemoryStoreJournal(t *testing.T) {
	s := NewMemoryStore()

	first, err := s.CreateJournalEntry(models.InsertJournalEntry{UserID: "u1", Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, "reflection", first.EntryType)
	assert.True(t, first.IsPrivate)

	time.Sleep(2 * time.Millisecond)
	second, err := s.CreateJournalEntry(models.InsertJournalEntry{UserID: "u1", Content: "second"})
	require.NoError(t, err)

	entries, err := s.GetUserJournalEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")

	before := first.UpdatedAt
	time.Sleep(2 * time.Millisecond)
	updated, err := s.UpdateJournalEntry(first.ID, Partial{"content": "revised"})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
	assert.True(t, updated.UpdatedAt.After(before), "updatedAt refreshes on mutation")
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	ok, err := s.DeleteJournalEntry(first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreAltar(t *testing.T) {
	s := NewMemoryStore()

	a, err := s.CreateAltarElement(models.InsertAltarElement{
		UserID:      "u1",
		Element:     "candle",
		ElementData: mustJSON(map[string]any{"color": "white"}),
	})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.False(t, a.UnlockedAt.IsZero())

	elements, err := s.GetUserAltarElements("u1")
	require.NoError(t, err)
	require.Len(t, elements, 1)

	dimmed, err := s.UpdateAltarElement(a.ID, Partial{"isActive": false})
	require.NoError(t, err)
	assert.False(t, dimmed.IsActive)
}

func TestMemoryStoreDueContent(t *testing.T) {
	s := NewMemoryStore()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	due, err := s.CreateRealm(models.InsertRealm{
		Title: "Hidden", Description: "d", Element: "spirit",
		Order: ptr(9), IsActive: ptr(false), PublishAt: &past,
	})
	require.NoError(t, err)
	_, err = s.CreateRealm(models.InsertRealm{
		Title: "Later", Description: "d", Element: "air",
		Order: ptr(10), IsActive: ptr(false), PublishAt: &future,
	})
	require.NoError(t, err)
	insertRealm(t, s, "Already live", 1)

	realms, err := s.DueRealms(time.Now())
	require.NoError(t, err)
	require.Len(t, realms, 1)
	assert.Equal(t, due.ID, realms[0].ID)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, Seed(s))
	require.NoError(t, Seed(s))

	realms, err := s.GetRealms()
	require.NoError(t, err)
	assert.Len(t, realms, 2)

	achievements, err := s.GetAchievements()
	require.NoError(t, err)
	assert.Len(t, achievements, 1)
}
