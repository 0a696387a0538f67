package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

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
	coll  *mongo.Collection
	now   func() time.Time
}

func (s *settingsStore) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var cur domain.SiteSettings
	err := s.coll.FindOne(ctx, bson.M{"_id": domain.SiteSettingsID}).Decode(&cur)
	if errors.Is(err, mongo.ErrNoDocuments) {
		d := domain.DefaultSiteSettings()
		return &d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return &cur, nil
}

// Merge sets only the patched fields. Defaults are written for the rest
// when the document is created.
func (s *settingsStore) Merge(ctx context.Context, patch domain.SiteSettingsPatch) (*domain.SiteSettings, error) {
	set := patchFields(patch)
	set["updatedAt"] = s.now()

	onInsert := bson.M{}
	for k, v := range settingsFields(domain.DefaultSiteSettings()) {
		if _, ok := set[k]; !ok {
			onInsert[k] = v
		}
	}

	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var merged domain.SiteSettings
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": domain.SiteSettingsID}, update, opts).Decode(&merged)
	if err != nil {
		return nil, fmt.Errorf("merging settings: %w", err)
	}

	s.store.settingsHub.Publish()
	return &merged, nil
}

func (s *settingsStore) Watch(ctx context.Context) (<-chan domain.SiteSettings, error) {
	return stream(ctx, s.store, s.coll, s.store.settingsHub,
		func(ctx context.Context) (domain.SiteSettings, error) {
			cur, err := s.Get(ctx)
			if err != nil {
				return domain.SiteSettings{}, err
			}
			return *cur, nil
		})
}

// settingsFields flattens a settings document into dotted paths.
func settingsFields(st domain.SiteSettings) bson.M {
	return bson.M{
		"adminPassword":         st.AdminPassword,
		"deliveryChargeInside":  st.DeliveryChargeInside,
		"deliveryChargeOutside": st.DeliveryChargeOutside,
		"broadcastText":         st.BroadcastText,
		"broadcastColor":        st.BroadcastColor,
		"theme.primary":         st.Theme.Primary,
		"theme.accent":          st.Theme.Accent,
		"theme.background":      st.Theme.Background,
		"social.facebook":       st.Social.Facebook,
		"social.instagram":      st.Social.Instagram,
		"social.whatsapp":       st.Social.WhatsApp,
		"social.youtube":        st.Social.YouTube,
	}
}

// patchFields returns the dotted paths a patch sets.
func patchFields(p domain.SiteSettingsPatch) bson.M {
	set := bson.M{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("adminPassword", p.AdminPassword)
	put("broadcastText", p.BroadcastText)
	put("broadcastColor", p.BroadcastColor)
	put("theme.primary", p.ThemePrimary)
	put("theme.accent", p.ThemeAccent)
	put("theme.background", p.ThemeBackground)
	put("social.facebook", p.Facebook)
	put("social.instagram", p.Instagram)
	put("social.whatsapp", p.WhatsApp)
	put("social.youtube", p.YouTube)
	if p.DeliveryChargeInside != nil {
		set["deliveryChargeInside"] = *p.DeliveryChargeInside
	}
	if p.DeliveryChargeOutside != nil {
		set["deliveryChargeOutside"] = *p.DeliveryChargeOutside
	}
	return set
}

type loginStatStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (s *loginStatStore) Increment(ctx context.Context, date string) (*domain.LoginStat, error) {
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"lastLoginAt": s.now()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var st domain.LoginStat
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": date}, update, opts).Decode(&st); err != nil {
		return nil, fmt.Errorf("incrementing login stat: %w", err)
	}
	return &st, nil
}

func (s *loginStatStore) List(ctx context.Context) ([]domain.LoginStat, error) {
	return findAll[domain.LoginStat](ctx, s.coll, bson.M{}, bson.D{{Key: "_id", Value: -1}})
}
