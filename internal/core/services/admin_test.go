package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

type adminFixture struct {
	gate     *AdminGate
	site     *SiteSettingsService
	settings *memory.SettingsStore
	sessions *memory.SessionStore
	logins   *memory.LoginStatStore
}

func newAdminFixture() adminFixture {
	f := adminFixture{
		settings: memory.NewSettingsStore(),
		sessions: memory.NewSessionStore(),
		logins:   memory.NewLoginStatStore(),
	}
	f.gate = NewAdminGate(f.settings, f.sessions, f.logins)
	f.gate.cost = bcrypt.MinCost
	f.gate.now = func() time.Time { return time.Date(2024, 8, 15, 9, 30, 0, 0, time.UTC) }
	f.site = NewSiteSettingsService(f.settings)
	return f
}

func TestAdminGate_LoginAndRequire(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.gate.Require(ctx), domain.ErrAccessDenied, "no session yet")

	require.NoError(t, f.gate.Login(ctx, domain.DefaultAdminPassword))
	assert.NoError(t, f.gate.Require(ctx))

	stats, err := f.logins.List(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "2024-08-15", stats[0].Date)
	assert.Equal(t, 1, stats[0].Count)

	require.NoError(t, f.gate.Logout())
	assert.ErrorIs(t, f.gate.Require(ctx), domain.ErrAccessDenied)
}

func TestAdminGate_Login_Denied(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.gate.Login(ctx, "wrong"), domain.ErrAccessDenied)
	assert.ErrorIs(t, f.gate.Login(ctx, ""), domain.ErrAccessDenied)

	sess, err := f.sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	stats, err := f.logins.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestAdminGate_PasswordChangeInvalidatesSession(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	require.NoError(t, f.gate.Login(ctx, domain.DefaultAdminPassword))
	_, err := f.site.Update(ctx, domain.SiteSettingsPatch{AdminPassword: ptr("s3cret")})
	require.NoError(t, err)

	assert.ErrorIs(t, f.gate.Require(ctx), domain.ErrAccessDenied)
	assert.ErrorIs(t, f.gate.Unlocked(ctx, domain.DefaultAdminPassword), domain.ErrAccessDenied)
	assert.NoError(t, f.gate.Unlocked(ctx, "s3cret"))

	require.NoError(t, f.gate.Login(ctx, "s3cret"))
	assert.NoError(t, f.gate.Require(ctx))
}

func TestAdminGate_NilStats(t *testing.T) {
	gate := NewAdminGate(memory.NewSettingsStore(), memory.NewSessionStore(), nil)
	gate.cost = bcrypt.MinCost
	assert.NoError(t, gate.Login(context.Background(), domain.DefaultAdminPassword))
}

func TestSiteSettingsService_Update(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	got, err := f.site.Update(ctx, domain.SiteSettingsPatch{
		DeliveryChargeInside: ptr(80.0),
		BroadcastText:        ptr("Eid sale!"),
		ThemeAccent:          ptr("#00ff00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.DeliveryChargeInside)
	assert.Equal(t, 120.0, got.DeliveryChargeOutside, "untouched fields keep their value")
	assert.Equal(t, "Eid sale!", got.BroadcastText)
	assert.Equal(t, "#00ff00", got.Theme.Accent)
	assert.True(t, got.HasBroadcast())

	current, err := f.site.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, got.BroadcastText, current.BroadcastText)
}

func TestSiteSettingsService_Update_Invalid(t *testing.T) {
	f := newAdminFixture()
	tests := []struct {
		name  string
		patch domain.SiteSettingsPatch
	}{
		{"empty patch", domain.SiteSettingsPatch{}},
		{"empty password", domain.SiteSettingsPatch{AdminPassword: ptr("")}},
		{"negative inside", domain.SiteSettingsPatch{DeliveryChargeInside: ptr(-1.0)}},
		{"negative outside", domain.SiteSettingsPatch{DeliveryChargeOutside: ptr(-5.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.site.Update(context.Background(), tt.patch)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSiteSettingsService_Watch(t *testing.T) {
	f := newAdminFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := f.site.Watch(ctx)
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, domain.DefaultAdminPassword, first.AdminPassword)

	_, err = f.site.Update(context.Background(), domain.SiteSettingsPatch{BroadcastText: ptr("hello")})
	require.NoError(t, err)

	select {
	case next := <-ch:
		assert.Equal(t, "hello", next.BroadcastText)
	case <-time.After(2 * time.Second):
		t.Fatal("no settings snapshot after update")
	}
}

func TestStatsService(t *testing.T) {
	logins := memory.NewLoginStatStore()
	_, err := logins.Increment(context.Background(), "2024-01-02")
	require.NoError(t, err)
	_, err = logins.Increment(context.Background(), "2024-01-03")
	require.NoError(t, err)

	rec := &mockRecorder{}
	rec.Record("llm.chat", 2*time.Second)
	svc := NewStatsService(logins, rec)

	stats, err := svc.Logins(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "2024-01-03", stats[0].Date)

	lat := svc.Latencies()
	require.Len(t, lat, 1)
	assert.Equal(t, "llm.chat", lat[0].Operation)

	assert.Nil(t, NewStatsService(logins, nil).Latencies())
}
