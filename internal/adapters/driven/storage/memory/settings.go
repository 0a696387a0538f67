package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the settings stores implement their interfaces.
var (
	_ driven.SettingsStore  = (*SettingsStore)(nil)
	_ driven.LoginStatStore = (*LoginStatStore)(nil)
	_ driven.SessionStore   = (*SessionStore)(nil)
)

// SettingsStore is an in-memory implementation of driven.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings *domain.SiteSettings
	hub      *watch.Hub
	now      func() time.Time
}

// NewSettingsStore creates a new in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{hub: watch.NewHub(), now: time.Now}
}

// Get returns the settings, or the defaults when none are stored.
func (s *SettingsStore) Get(_ context.Context) (*domain.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		d := domain.DefaultSiteSettings()
		return &d, nil
	}
	out := *s.settings
	return &out, nil
}

// Merge applies a patch and returns the merged document.
func (s *SettingsStore) Merge(_ context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error) {
	s.mu.Lock()
	base := domain.DefaultSiteSettings()
	if s.settings != nil {
		base = *s.settings
	}
	merged := patch.Apply(base)
	merged.UpdatedAt = s.now()
	s.settings = &merged
	s.mu.Unlock()

	s.hub.Publish()
	out := merged
	return &out, nil
}

// Watch subscribes to the settings document.
func (s *SettingsStore) Watch(ctx context.Context) (<-chan domain.SiteSettings, error) {
	return watch.Stream(ctx, s.hub, func(ctx context.Context) (domain.SiteSettings, error) {
		cur, err := s.Get(ctx)
		if err != nil {
			return domain.SiteSettings{}, err
		}
		return *cur, nil
	})
}

// LoginStatStore is an in-memory implementation of driven.LoginStatStore.
type LoginStatStore struct {
	mu    sync.Mutex
	stats map[string]domain.LoginStat
	now   func() time.Time
}

// NewLoginStatStore creates a new in-memory login stat store.
func NewLoginStatStore() *LoginStatStore {
	return &LoginStatStore{stats: make(map[string]domain.LoginStat), now: time.Now}
}

// Increment adds one login to the given day.
func (s *LoginStatStore) Increment(_ context.Context, date string) (*domain.LoginStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats[date]
	st.Date = date
	st.Count++
	st.LastLoginAt = s.now()
	s.stats[date] = st
	return &st, nil
}

// List returns stats, most recent day first.
func (s *LoginStatStore) List(_ context.Context) ([]domain.LoginStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.LoginStat, 0, len(s.stats))
	for _, st := range s.stats {
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

// SessionStore keeps the admin session in memory.
type SessionStore struct {
	mu      sync.Mutex
	session *driven.AdminSession
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the stored session, or nil if none.
func (s *SessionStore) Load() (*driven.AdminSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	out := *s.session
	return &out, nil
}

// Save stores a session.
func (s *SessionStore) Save(sess *driven.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.session = &cp
	return nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
