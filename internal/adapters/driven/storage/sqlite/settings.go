package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the settings stores implement their interfaces.
var (
	_ driven.SettingsStore  = (*settingsStore)(nil)
	_ driven.LoginStatStore = (*loginStatStore)(nil)
)

type settingsStore struct {
	store *Store
	now   func() time.Time
}

func (s *settingsStore) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var cur domain.SiteSettings
	err := getBody(ctx, s.store.db, driven.CollectionSettings, "id", domain.SiteSettingsID, &cur)
	if errors.Is(err, domain.ErrNotFound) {
		d := domain.DefaultSiteSettings()
		return &d, nil
	}
	if err != nil {
		return nil, err
	}
	return &cur, nil
}

func (s *settingsStore) Merge(ctx context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	base := domain.DefaultSiteSettings()
	err = getBody(ctx, tx, driven.CollectionSettings, "id", domain.SiteSettingsID, &base)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	merged := patch.Apply(base)
	merged.UpdatedAt = s.now()

	body, err := json.Marshal(&merged)
	if err != nil {
		return nil, fmt.Errorf("marshaling settings: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (id, body) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body
	`, domain.SiteSettingsID, string(body))
	if err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing settings: %w", err)
	}

	s.store.settingsHub.Publish()
	return &merged, nil
}

func (s *settingsStore) Watch(ctx context.Context) (<-chan domain.SiteSettings, error) {
	return watch.StreamEvery(ctx, s.store.settingsHub, s.store.poll,
		func(ctx context.Context) (domain.SiteSettings, error) {
			cur, err := s.Get(ctx)
			if err != nil {
				return domain.SiteSettings{}, err
			}
			return *cur, nil
		})
}

type loginStatStore struct {
	store *Store
	now   func() time.Time
}

func (s *loginStatStore) Increment(ctx context.Context, date string) (*domain.LoginStat, error) {
	now := s.now()
	var (
		count int
		last  int64
	)
	err := s.store.db.QueryRowContext(ctx, `
		INSERT INTO loginStats (date, count, last_login_at) VALUES (?, 1, ?)
		ON CONFLICT(date) DO UPDATE SET
			count = count + 1,
			last_login_at = excluded.last_login_at
		RETURNING count, last_login_at
	`, date, now.UnixNano()).Scan(&count, &last)
	if err != nil {
		return nil, fmt.Errorf("incrementing login stat: %w", err)
	}
	return &domain.LoginStat{Date: date, Count: count, LastLoginAt: time.Unix(0, last)}, nil
}

func (s *loginStatStore) List(ctx context.Context) ([]domain.LoginStat, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT date, count, last_login_at FROM loginStats ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("listing login stats: %w", err)
	}
	defer rows.Close()

	result := make([]domain.LoginStat, 0)
	for rows.Next() {
		var (
			st   domain.LoginStat
			last int64
		)
		if err := rows.Scan(&st.Date, &st.Count, &last); err != nil {
			return nil, fmt.Errorf("scanning login stat: %w", err)
		}
		st.LastLoginAt = time.Unix(0, last)
		result = append(result, st)
	}
	return result, rows.Err()
}
