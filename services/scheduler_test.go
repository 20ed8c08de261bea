package services

import (
	"testing"
	"time"

	"academy-server/models"
	"academy-server/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolp(v bool) *bool { return &v }
func intp(v int) *int    { return &v }

func TestPublishDueActivatesContent(t *testing.T) {
	store := storage.NewMemoryStore()
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	hidden, err := store.CreateRealm(models.InsertRealm{
		Title: "Spirit Realm", Description: "d", Element: "spirit",
		Order: intp(5), IsActive: boolp(false), PublishAt: &past,
	})
	require.NoError(t, err)
	later, err := store.CreateRealm(models.InsertRealm{
		Title: "Air Realm", Description: "d", Element: "air",
		Order: intp(6), IsActive: boolp(false), PublishAt: &future,
	})
	require.NoError(t, err)

	sched := NewPublishScheduler(store, zerolog.Nop())
	sched.PublishDue(time.Now())

	published, err := store.GetRealm(hidden.ID)
	require.NoError(t, err)
	assert.True(t, published.IsActive)
	assert.Nil(t, published.PublishAt, "publish time cleared so the job won't re-fire")

	waiting, err := store.GetRealm(later.ID)
	require.NoError(t, err)
	assert.False(t, waiting.IsActive)
}

func TestPublishDueActivatesLessons(t *testing.T) {
	store := storage.NewMemoryStore()
	past := time.Now().Add(-time.Minute)

	lesson, err := store.CreateLesson(models.InsertLesson{
		ModuleID: "m1", Title: "Hidden Rite", Description: "d",
		Content: []byte(`{}`), Order: intp(1),
		IsActive: boolp(false), PublishAt: &past,
	})
	require.NoError(t, err)

	sched := NewPublishScheduler(store, zerolog.Nop())
	sched.PublishDue(time.Now())

	published, err := store.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.True(t, published.IsActive)
}
