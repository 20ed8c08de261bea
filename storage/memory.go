package storage

import (
	"sort"
	"sync"
	"time"

	"academy-server/models"

	"github.com/google/uuid"
)

// collection is an id-keyed set of records that remembers insertion order,
// which is the documented tiebreak when display orders collide.
type collection[T any] struct {
	items map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) insert(id string, v T) {
	c.items[id] = v
	c.order = append(c.order, id)
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) replace(id string, v T) {
	c.items[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// all returns the records in insertion order.
func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.items))
	for _, id := range c.order {
		if v, ok := c.items[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// MemoryStore keeps every collection in process memory behind a single
// write lock. It backs tests and local development; production runs the
// database-backed store behind the same interface.
type MemoryStore struct {
	mu sync.RWMutex

	// CascadeDelete makes realm and module deletion remove their children
	// instead of orphaning them. Off by default.
	CascadeDelete bool

	users            *collection[models.User]
	realms           *collection[models.Realm]
	modules          *collection[models.Module]
	lessons          *collection[models.Lesson]
	progress         *collection[models.UserProgress]
	achievements     *collection[models.Achievement]
	userAchievements *collection[models.UserAchievement]
	journal          *collection[models.JournalEntry]
	altar            *collection[models.AltarElement]
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:            newCollection[models.User](),
		realms:           newCollection[models.Realm](),
		modules:          newCollection[models.Module](),
		lessons:          newCollection[models.Lesson](),
		progress:         newCollection[models.UserProgress](),
		achievements:     newCollection[models.Achievement](),
		userAchievements: newCollection[models.UserAchievement](),
		journal:          newCollection[models.JournalEntry](),
		altar:            newCollection[models.AltarElement](),
	}
}

// Users

func (s *MemoryStore) GetUser(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users.get(id); ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.all() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.all() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(in models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.NewUser(in)
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	s.users.insert(u.ID, u)
	return &u, nil
}

func (s *MemoryStore) UpdateUser(id string, partial Partial) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.users.get(id)
	if !ok {
		return nil, nil
	}
	u := prev
	if err := mergePatch(&u, partial); err != nil {
		return nil, err
	}
	u.ID = prev.ID
	s.users.replace(id, u)
	return &u, nil
}

// Realms

func (s *MemoryStore) GetRealms() ([]models.Realm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	realms := s.realms.all()
	sort.SliceStable(realms, func(i, j int) bool { return realms[i].Order < realms[j].Order })
	return realms, nil
}

func (s *MemoryStore) GetRealm(id string) (*models.Realm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.realms.get(id); ok {
		return &r, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateRealm(in models.InsertRealm) (*models.Realm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.NewRealm(in)
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	s.realms.insert(r.ID, r)
	return &r, nil
}

func (s *MemoryStore) UpdateRealm(id string, partial Partial) (*models.Realm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.realms.get(id)
	if !ok {
		return nil, nil
	}
	r := prev
	if err := mergePatch(&r, partial); err != nil {
		return nil, err
	}
	r.ID = prev.ID
	s.realms.replace(id, r)
	return &r, nil
}

func (s *MemoryStore) DeleteRealm(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.realms.remove(id) {
		return false, nil
	}
	if s.CascadeDelete {
		for _, m := range s.modules.all() {
			if m.RealmID == id {
				s.modules.remove(m.ID)
				s.removeLessonsOf(m.ID)
			}
		}
	}
	return true, nil
}

// Modules

func (s *MemoryStore) GetModulesByRealm(realmID string) ([]models.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Module{}
	for _, m := range s.modules.all() {
		if m.RealmID == realmID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) GetModule(id string) (*models.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.modules.get(id); ok {
		return &m, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateModule(in models.InsertModule) (*models.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.NewModule(in)
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	s.modules.insert(m.ID, m)
	return &m, nil
}

func (s *MemoryStore) UpdateModule(id string, partial Partial) (*models.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.modules.get(id)
	if !ok {
		return nil, nil
	}
	m := prev
	if err := mergePatch(&m, partial); err != nil {
		return nil, err
	}
	m.ID = prev.ID
	s.modules.replace(id, m)
	return &m, nil
}

func (s *MemoryStore) DeleteModule(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modules.remove(id) {
		return false, nil
	}
	if s.CascadeDelete {
		s.removeLessonsOf(id)
	}
	return true, nil
}

// removeLessonsOf deletes every lesson belonging to a module. Caller holds
// the write lock.
func (s *MemoryStore) removeLessonsOf(moduleID string) {
	for _, l := range s.lessons.all() {
		if l.ModuleID == moduleID {
			s.lessons.remove(l.ID)
		}
	}
}

// Lessons

func (s *MemoryStore) GetLessonsByModule(moduleID string) ([]models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Lesson{}
	for _, l := range s.lessons.all() {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) GetLesson(id string) (*models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.lessons.get(id); ok {
		return &l, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateLesson(in models.InsertLesson) (*models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := models.NewLesson(in)
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	s.lessons.insert(l.ID, l)
	return &l, nil
}

func (s *MemoryStore) UpdateLesson(id string, partial Partial) (*models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.lessons.get(id)
	if !ok {
		return nil, nil
	}
	l := prev
	if err := mergePatch(&l, partial); err != nil {
		return nil, err
	}
	l.ID = prev.ID
	s.lessons.replace(id, l)
	return &l, nil
}

func (s *MemoryStore) DeleteLesson(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessons.remove(id), nil
}

// Progress

func (s *MemoryStore) GetUserProgress(userID string) ([]models.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.UserProgress{}
	for _, p := range s.progress.all() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetUserProgressByLesson(userID, lessonID string) (*models.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.progress.all() {
		if p.UserID == userID && p.LessonID == lessonID {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUserProgress(in models.InsertUserProgress) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.NewUserProgress(in)
	p.ID = uuid.NewString()
	s.progress.insert(p.ID, p)
	return &p, nil
}

func (s *MemoryStore) UpdateUserProgress(id string, partial Partial) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.progress.get(id)
	if !ok {
		return nil, nil
	}
	p := prev
	if err := mergePatch(&p, partial); err != nil {
		return nil, err
	}
	p.ID = prev.ID
	applyCompletion(&p, prev.CompletedAt, partial)
	s.progress.replace(id, p)
	return &p, nil
}

// applyCompletion keeps completedAt server-controlled: marking a record
// completed stamps the server clock regardless of what the client sent,
// un-completing keeps the first completion timestamp, and an update that
// does not touch the completed flag leaves the stored value in place.
func applyCompletion(p *models.UserProgress, prevCompletedAt *time.Time, partial Partial) {
	completed, present := patchBool(partial, "completed")
	if !present || !completed {
		p.CompletedAt = prevCompletedAt
		return
	}
	now := time.Now()
	p.CompletedAt = &now
}

// Achievements

func (s *MemoryStore) GetAchievements() ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.achievements.all(), nil
}

func (s *MemoryStore) GetAchievement(id string) (*models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.achievements.get(id); ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemoryStore) GetUserAchievements(userID string) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	earned := map[string]bool{}
	for _, ua := range s.userAchievements.all() {
		if ua.UserID == userID {
			earned[ua.AchievementID] = true
		}
	}
	out := []models.Achievement{}
	for _, a := range s.achievements.all() {
		if earned[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateAchievement(in models.InsertAchievement) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.NewAchievement(in)
	a.ID = uuid.NewString()
	s.achievements.insert(a.ID, a)
	return &a, nil
}

func (s *MemoryStore) GrantAchievement(userID, achievementID string) (*models.UserAchievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ua := range s.userAchievements.all() {
		if ua.UserID == userID && ua.AchievementID == achievementID {
			return &ua, nil
		}
	}
	ua := models.UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}
	s.userAchievements.insert(ua.ID, ua)
	return &ua, nil
}

// Journal

func (s *MemoryStore) GetUserJournalEntries(userID string) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.JournalEntry{}
	for _, e := range s.journal.all() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) GetJournalEntry(id string) (*models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.journal.get(id); ok {
		return &e, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateJournalEntry(in models.InsertJournalEntry) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := models.NewJournalEntry(in)
	e.ID = uuid.NewString()
	s.journal.insert(e.ID, e)
	return &e, nil
}

func (s *MemoryStore) UpdateJournalEntry(id string, partial Partial) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.journal.get(id)
	if !ok {
		return nil, nil
	}
	e := prev
	if err := mergePatch(&e, partial); err != nil {
		return nil, err
	}
	e.ID = prev.ID
	e.CreatedAt = prev.CreatedAt
	e.UpdatedAt = time.Now()
	s.journal.replace(id, e)
	return &e, nil
}

func (s *MemoryStore) DeleteJournalEntry(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.remove(id), nil
}

// Altar

func (s *MemoryStore) GetUserAltarElements(userID string) ([]models.AltarElement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AltarElement{}
	for _, a := range s.altar.all() {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetAltarElement(id string) (*models.AltarElement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.altar.get(id); ok {
		return &a, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateAltarElement(in models.InsertAltarElement) (*models.AltarElement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.NewAltarElement(in)
	a.ID = uuid.NewString()
	s.altar.insert(a.ID, a)
	return &a, nil
}

func (s *MemoryStore) UpdateAltarElement(id string, partial Partial) (*models.AltarElement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.altar.get(id)
	if !ok {
		return nil, nil
	}
	a := prev
	if err := mergePatch(&a, partial); err != nil {
		return nil, err
	}
	a.ID = prev.ID
	s.altar.replace(id, a)
	return &a, nil
}

// Scheduled publishing

func (s *MemoryStore) DueRealms(now time.Time) ([]models.Realm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Realm{}
	for _, r := range s.realms.all() {
		if !r.IsActive && r.PublishAt != nil && !r.PublishAt.After(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) DueLessons(now time.Time) ([]models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Lesson{}
	for _, l := range s.lessons.all() {
		if !l.IsActive && l.PublishAt != nil && !l.PublishAt.After(now) {
			out = append(out, l)
		}
	}
	return out, nil
}
