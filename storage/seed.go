package storage

import (
	"encoding/json"

	"academy-server/models"
)

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func ptr[T any](v T) *T { return &v }

// Seed loads the starter curriculum: two realms, a foundations module, a
// grounding lesson and a first-steps achievement. It is a no-op when realms
// already exist so restarts do not duplicate content.
func Seed(s Store) error {
	existing, err := s.GetRealms()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	earth, err := s.CreateRealm(models.InsertRealm{
		Title:           "Earth Realm",
		Description:     "Discover the grounding wisdom of the earth element through crystal work, herbalism, and nature connection.",
		Element:         "earth",
		BackgroundImage: ptr("https://images.unsplash.com/photo-1518837695005-2083093ee35b"),
		Icon:            ptr("seedling"),
		Order:           ptr(1),
		ChildTheme: mustJSON(map[string]any{
			"colors":    []string{"#10B981", "#059669"},
			"creatures": []string{"Earth Dragons", "Crystal Sprites"},
		}),
		AdultTheme: mustJSON(map[string]any{
			"colors":  []string{"#065F46", "#047857"},
			"symbols": []string{"Sacred Geometry", "Ancient Trees"},
		}),
	})
	if err != nil {
		return err
	}

	if _, err := s.CreateRealm(models.InsertRealm{
		Title:           "Water Realm",
		Description:     "Flow with the emotional wisdom of water through healing, intuition, and purification practices.",
		Element:         "water",
		BackgroundImage: ptr("https://images.unsplash.com/photo-1439066615861-d1af74d74000"),
		Icon:            ptr("wave"),
		Order:           ptr(2),
		ChildTheme: mustJSON(map[string]any{
			"colors":    []string{"#3B82F6", "#2563EB"},
			"creatures": []string{"Water Elementals", "Moon Dolphins"},
		}),
		AdultTheme: mustJSON(map[string]any{
			"colors":  []string{"#1E40AF", "#1D4ED8"},
			"symbols": []string{"Sacred Pools", "Lunar Cycles"},
		}),
	}); err != nil {
		return err
	}

	foundations, err := s.CreateModule(models.InsertModule{
		RealmID:     earth.ID,
		Title:       "Foundations of Earth",
		Description: "Learn the fundamental principles of earth element wisdom and grounding practices.",
		Order:       ptr(1),
	})
	if err != nil {
		return err
	}

	if _, err := s.CreateLesson(models.InsertLesson{
		ModuleID:    foundations.ID,
		Title:       "Grounding Practices",
		Description: "Discover ancient techniques for connecting with earth's stabilizing energy.",
		Content: mustJSON(map[string]any{
			"blocks": []map[string]any{
				{"type": "text", "body": "Grounding is the practice of connecting your energy with the earth."},
				{"type": "video", "url": "https://example.com/grounding-video"},
				{"type": "audio", "url": "https://example.com/grounding-meditation"},
			},
		}),
		Order:    ptr(1),
		Duration: ptr(15),
		ChildContent: mustJSON(map[string]any{
			"story":   "Meet Terra the Earth Dragon who will teach you magical grounding spells!",
			"quest":   "Help Terra collect 5 grounding crystals by completing the breathing exercise",
			"rewards": []string{"Earth Shield Spell", "Crystal Collector Badge"},
		}),
		AdultContent: mustJSON(map[string]any{
			"meditation":     "A 10-minute guided grounding meditation",
			"journalPrompts": []string{"How do you feel when you're disconnected from earth?"},
		}),
	}); err != nil {
		return err
	}

	_, err = s.CreateAchievement(models.InsertAchievement{
		Title:       "First Steps",
		Description: "Complete your first lesson in any realm",
		Icon:        ptr("star"),
		Type:        "milestone",
		Requirement: mustJSON(map[string]any{"lessonCount": 1}),
		ChildVersion: mustJSON(map[string]any{
			"title": "Young Seeker", "reward": "Magic Wand",
		}),
		AdultVersion: mustJSON(map[string]any{
			"title": "Soul Awakening", "reward": "Sacred Journal",
		}),
	})
	return err
}
