package memory

import "github.com/sssmarthaat/haat/internal/core/ports/driven"

// NewStores returns a fresh set of in-memory stores.
func NewStores() driven.Stores {
	return driven.Stores{
		Products:   NewProductStore(),
		Categories: NewCategoryStore(),
		Banners:    NewBannerStore(),
		Orders:     NewOrderStore(),
		Messages:   NewMessageStore(),
		Settings:   NewSettingsStore(),
		LoginStats: NewLoginStatStore(),
		Close:      func() error { return nil },
	}
}
