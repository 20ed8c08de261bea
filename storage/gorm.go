package storage

import (
	"errors"
	"time"

	"academy-server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on top of a relational database. Partial
// updates are read-modify-write: the stored record is loaded, the patch is
// merged onto it and the result saved, so update semantics match the
// in-memory store exactly.
type GormStore struct {
	db *gorm.DB

	// CascadeDelete mirrors MemoryStore.CascadeDelete.
	CascadeDelete bool
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates every table the store owns.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Realm{},
		&models.Module{},
		&models.Lesson{},
		&models.UserProgress{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.JournalEntry{},
		&models.AltarElement{},
	)
}

// first runs a query and maps gorm's not-found error to the (nil, nil)
// sentinel the route layer depends on.
func first[T any](q *gorm.DB) (*T, error) {
	var rec T
	if err := q.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func update[T any](s *GormStore, id string, partial Partial, post func(prev, next *T)) (*T, error) {
	prev, err := first[T](s.db.Where("id = ?", id))
	if err != nil || prev == nil {
		return nil, err
	}
	next := *prev
	if err := mergePatch(&next, partial); err != nil {
		return nil, err
	}
	if post != nil {
		post(prev, &next)
	}
	if err := s.db.Save(&next).Error; err != nil {
		return nil, err
	}
	return &next, nil
}

func deleteByID[T any](s *GormStore, id string) (bool, error) {
	var rec T
	res := s.db.Where("id = ?", id).Delete(&rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Users

func (s *GormStore) GetUser(id string) (*models.User, error) {
	return first[models.User](s.db.Where("id = ?", id))
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	return first[models.User](s.db.Where("username = ?", username))
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	return first[models.User](s.db.Where("email = ?", email))
}

func (s *GormStore) CreateUser(in models.InsertUser) (*models.User, error) {
	u := models.NewUser(in)
	u.ID = uuid.NewString()
	if err := s.db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) UpdateUser(id string, partial Partial) (*models.User, error) {
	return update[models.User](s, id, partial, func(prev, next *models.User) {
		next.ID = prev.ID
		next.Password = prev.Password
	})
}

// Realms

func (s *GormStore) GetRealms() ([]models.Realm, error) {
	var realms []models.Realm
	err := s.db.Order("display_order asc, created_at asc").Find(&realms).Error
	return realms, err
}

func (s *GormStore) GetRealm(id string) (*models.Realm, error) {
	return first[models.Realm](s.db.Where("id = ?", id))
}

func (s *GormStore) CreateRealm(in models.InsertRealm) (*models.Realm, error) {
	r := models.NewRealm(in)
	r.ID = uuid.NewString()
	if err := s.db.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) UpdateRealm(id string, partial Partial) (*models.Realm, error) {
	return update[models.Realm](s, id, partial, func(prev, next *models.Realm) {
		next.ID = prev.ID
	})
}

func (s *GormStore) DeleteRealm(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Realm{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted || !s.CascadeDelete {
			return nil
		}
		var moduleIDs []string
		if err := tx.Model(&models.Module{}).Where("realm_id = ?", id).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("realm_id = ?", id).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return deleted, err
}

// Modules

func (s *GormStore) GetModulesByRealm(realmID string) ([]models.Module, error) {
	modules := []models.Module{}
	err := s.db.Where("realm_id = ?", realmID).Order("display_order asc, created_at asc").Find(&modules).Error
	return modules, err
}

func (s *GormStore) GetModule(id string) (*models.Module, error) {
	return first[models.Module](s.db.Where("id = ?", id))
}

func (s *GormStore) CreateModule(in models.InsertModule) (*models.Module, error) {
	m := models.NewModule(in)
	m.ID = uuid.NewString()
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) UpdateModule(id string, partial Partial) (*models.Module, error) {
	return update[models.Module](s, id, partial, func(prev, next *models.Module) {
		next.ID = prev.ID
	})
}

func (s *GormStore) DeleteModule(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Module{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if deleted && s.CascadeDelete {
			return tx.Where("module_id = ?", id).Delete(&models.Lesson{}).Error
		}
		return nil
	})
	return deleted, err
}

// Lessons

func (s *GormStore) GetLessonsByModule(moduleID string) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.Where("module_id = ?", moduleID).Order("display_order asc, created_at asc").Find(&lessons).Error
	return lessons, err
}

func (s *GormStore) GetLesson(id string) (*models.Lesson, error) {
	return first[models.Lesson](s.db.Where("id = ?", id))
}

func (s *GormStore) CreateLesson(in models.InsertLesson) (*models.Lesson, error) {
	l := models.NewLesson(in)
	l.ID = uuid.NewString()
	if err := s.db.Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *GormStore) UpdateLesson(id string, partial Partial) (*models.Lesson, error) {
	return update[models.Lesson](s, id, partial, func(prev, next *models.Lesson) {
		next.ID = prev.ID
	})
}

func (s *GormStore) DeleteLesson(id string) (bool, error) {
	return deleteByID[models.Lesson](s, id)
}

// Progress

func (s *GormStore) GetUserProgress(userID string) ([]models.UserProgress, error) {
	progress := []models.UserProgress{}
	err := s.db.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

func (s *GormStore) GetUserProgressByLesson(userID, lessonID string) (*models.UserProgress, error) {
	return first[models.UserProgress](s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID))
}

func (s *GormStore) CreateUserProgress(in models.InsertUserProgress) (*models.UserProgress, error) {
	p := models.NewUserProgress(in)
	p.ID = uuid.NewString()
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) UpdateUserProgress(id string, partial Partial) (*models.UserProgress, error) {
	return update[models.UserProgress](s, id, partial, func(prev, next *models.UserProgress) {
		next.ID = prev.ID
		applyCompletion(next, prev.CompletedAt, partial)
	})
}

// Achievements

func (s *GormStore) GetAchievements() ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	err := s.db.Find(&achievements).Error
	return achievements, err
}

func (s *GormStore) GetAchievement(id string) (*models.Achievement, error) {
	return first[models.Achievement](s.db.Where("id = ?", id))
}

func (s *GormStore) GetUserAchievements(userID string) ([]models.Achievement, error) {
	var ids []string
	if err := s.db.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Pluck("achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	achievements := []models.Achievement{}
	if len(ids) == 0 {
		return achievements, nil
	}
	err := s.db.Where("id IN ?", ids).Find(&achievements).Error
	return achievements, err
}

func (s *GormStore) CreateAchievement(in models.InsertAchievement) (*models.Achievement, error) {
	a := models.NewAchievement(in)
	a.ID = uuid.NewString()
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) GrantAchievement(userID, achievementID string) (*models.UserAchievement, error) {
	existing, err := first[models.UserAchievement](s.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	ua := models.UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}
	if err := s.db.Create(&ua).Error; err != nil {
		return nil, err
	}
	return &ua, nil
}

// Journal

func (s *GormStore) GetUserJournalEntries(userID string) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&entries).Error
	return entries, err
}

func (s *GormStore) GetJournalEntry(id string) (*models.JournalEntry, error) {
	return first[models.JournalEntry](s.db.Where("id = ?", id))
}

func (s *GormStore) CreateJournalEntry(in models.InsertJournalEntry) (*models.JournalEntry, error) {
	e := models.NewJournalEntry(in)
	e.ID = uuid.NewString()
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *GormStore) UpdateJournalEntry(id string, partial Partial) (*models.JournalEntry, error) {
	return update[models.JournalEntry](s, id, partial, func(prev, next *models.JournalEntry) {
		next.ID = prev.ID
		next.CreatedAt = prev.CreatedAt
		next.UpdatedAt = time.Now()
	})
}

func (s *GormStore) DeleteJournalEntry(id string) (bool, error) {
	return deleteByID[models.JournalEntry](s, id)
}

// Altar

func (s *GormStore) GetUserAltarElements(userID string) ([]models.AltarElement, error) {
	elements := []models.AltarElement{}
	err := s.db.Where("user_id = ?", userID).Order("unlocked_at asc").Find(&elements).Error
	return elements, err
}

func (s *GormStore) GetAltarElement(id string) (*models.AltarElement, error) {
	return first[models.AltarElement](s.db.Where("id = ?", id))
}

func (s *GormStore) CreateAltarElement(in models.InsertAltarElement) (*models.AltarElement, error) {
	a := models.NewAltarElement(in)
	a.ID = uuid.NewString()
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) UpdateAltarElement(id string, partial Partial) (*models.AltarElement, error) {
	return update[models.AltarElement](s, id, partial, func(prev, next *models.AltarElement) {
		next.ID = prev.ID
	})
}

// Scheduled publishing

func (s *GormStore) DueRealms(now time.Time) ([]models.Realm, error) {
	realms := []models.Realm{}
	err := s.db.Where("is_active = ? AND publish_at IS NOT NULL AND publish_at <= ?", false, now).Find(&realms).Error
	return realms, err
}

func (s *GormStore) DueLessons(now time.Time) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.Where("is_active = ? AND publish_at IS NOT NULL AND publish_at <= ?", false, now).Find(&lessons).Error
	return lessons, err
}
