package driving

import (
	"context"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// AdminGate is the password lock in front of the admin console.
// It is a UX lock, not an authentication system.
type AdminGate interface {
	// Login checks password against the site settings and stores a session.
	// A wrong password returns domain.ErrAccessDenied.
	Login(ctx context.Context, password string) error

	// Require returns nil if a stored session matches the current password.
	Require(ctx context.Context) error

	// Unlocked reports whether password matches the current admin password
	// without touching the session. Used by stateless callers.
	Unlocked(ctx context.Context, password string) error

	// Logout clears the stored session.
	Logout() error
}

// StatsService reports admin statistics.
type StatsService interface {
	// Logins returns admin login counts per day, most recent first.
	Logins(ctx context.Context) ([]domain.LoginStat, error)

	// Latencies returns per-operation latency summaries.
	Latencies() []domain.LatencySummary
}
