package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure the admin services implement their interfaces.
var (
	_ driving.AdminGate           = (*AdminGate)(nil)
	_ driving.SiteSettingsService = (*SiteSettingsService)(nil)
	_ driving.StatsService        = (*StatsService)(nil)
)

// AdminGate is the password lock in front of the admin console.
// The password lives in the site settings document, so a password change
// invalidates every stored session on the next Require.
type AdminGate struct {
	settings driven.SettingsStore
	sessions driven.SessionStore
	stats    driven.LoginStatStore
	cost     int
	now      func() time.Time
}

// NewAdminGate creates a new admin gate. stats may be nil.
func NewAdminGate(
	settings driven.SettingsStore,
	sessions driven.SessionStore,
	stats driven.LoginStatStore,
) *AdminGate {
	return &AdminGate{
		settings: settings,
		sessions: sessions,
		stats:    stats,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Unlocked reports whether password matches the current admin password.
func (g *AdminGate) Unlocked(ctx context.Context, password string) error {
	current, err := g.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load site settings: %w", err)
	}
	if password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(current.AdminPassword)) != 1 {
		return domain.ErrAccessDenied
	}
	return nil
}

// Login checks password against the site settings and stores a session.
func (g *AdminGate) Login(ctx context.Context, password string) error {
	if err := g.Unlocked(ctx, password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return fmt.Errorf("hash session: %w", err)
	}
	if err := g.sessions.Save(&driven.AdminSession{PasswordHash: hash, CreatedAt: g.now()}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if g.stats != nil {
		if _, err := g.stats.Increment(ctx, domain.LoginStatDate(g.now())); err != nil {
			logger.Warn("login stat not recorded: %v", err)
		}
	}
	return nil
}

// Require returns nil if a stored session matches the current password.
func (g *AdminGate) Require(ctx context.Context) error {
	sess, err := g.sessions.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return domain.ErrAccessDenied
	}
	current, err := g.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load site settings: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(sess.PasswordHash, []byte(current.AdminPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrAccessDenied
		}
		return fmt.Errorf("%w: %w", domain.ErrAccessDenied, err)
	}
	return nil
}

// Logout clears the stored session.
func (g *AdminGate) Logout() error {
	return g.sessions.Clear()
}

// SiteSettingsService reads and merges the storefront settings document.
type SiteSettingsService struct {
	store driven.SettingsStore
}

// NewSiteSettingsService creates a new site settings service.
func NewSiteSettingsService(store driven.SettingsStore) *SiteSettingsService {
	return &SiteSettingsService{store: store}
}

// Get returns the current site settings.
func (s *SiteSettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	return s.store.Get(ctx)
}

// Update merges a patch into the settings document.
func (s *SiteSettingsService) Update(
	ctx context.Context,
	patch domain.SiteSettingsPatch,
) (*domain.SiteSettings, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if patch.AdminPassword != nil && *patch.AdminPassword == "" {
		return nil, fmt.Errorf("%w: admin password cannot be empty", domain.ErrInvalidInput)
	}
	if (patch.DeliveryChargeInside != nil && *patch.DeliveryChargeInside < 0) ||
		(patch.DeliveryChargeOutside != nil && *patch.DeliveryChargeOutside < 0) {
		return nil, fmt.Errorf("%w: delivery charges cannot be negative", domain.ErrInvalidInput)
	}
	return s.store.Merge(ctx, patch)
}

// Watch streams settings changes until ctx is cancelled.
func (s *SiteSettingsService) Watch(ctx context.Context) (<-chan domain.SiteSettings, error) {
	return s.store.Watch(ctx)
}

// StatsService reports admin statistics.
type StatsService struct {
	logins   driven.LoginStatStore
	recorder driven.LatencyRecorder
}

// NewStatsService creates a new stats service. recorder may be nil.
func NewStatsService(logins driven.LoginStatStore, recorder driven.LatencyRecorder) *StatsService {
	return &StatsService{logins: logins, recorder: recorder}
}

// Logins returns admin login counts per day, most recent first.
func (s *StatsService) Logins(ctx context.Context) ([]domain.LoginStat, error) {
	return s.logins.List(ctx)
}

// Latencies returns per-operation latency summaries.
func (s *StatsService) Latencies() []domain.LatencySummary {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Snapshot()
}
