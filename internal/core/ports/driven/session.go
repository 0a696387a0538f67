package driven

import "time"

// AdminSession is a stored admin unlock.
type AdminSession struct {
	// PasswordHash is a bcrypt hash of the password used to unlock.
	PasswordHash []byte `json:"passwordHash"`

	// CreatedAt is when the session was stored.
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore persists the admin session between invocations.
type SessionStore interface {
	// Load returns the stored session, or nil if none.
	Load() (*AdminSession, error)

	// Save stores a session, replacing any previous one.
	Save(s *AdminSession) error

	// Clear removes the stored session.
	Clear() error
}
