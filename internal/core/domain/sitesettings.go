package domain

import "time"

// SiteSettingsID is the id of the single site settings document.
const SiteSettingsID = "site-config"

// DefaultAdminPassword is used until an admin sets one.
const DefaultAdminPassword = "admin"

// Theme holds storefront colours as CSS colour strings.
type Theme struct {
	Primary    string `json:"primary" bson:"primary"`
	Accent     string `json:"accent" bson:"accent"`
	Background string `json:"background" bson:"background"`
}

// Social holds storefront social links.
type Social struct {
	Facebook  string `json:"facebook" bson:"facebook"`
	Instagram string `json:"instagram" bson:"instagram"`
	WhatsApp  string `json:"whatsapp" bson:"whatsapp"`
	YouTube   string `json:"youtube" bson:"youtube"`
}

// SiteSettings is the storefront configuration document.
type SiteSettings struct {
	AdminPassword         string    `json:"adminPassword" bson:"adminPassword"`
	DeliveryChargeInside  float64   `json:"deliveryChargeInside" bson:"deliveryChargeInside"`
	DeliveryChargeOutside float64   `json:"deliveryChargeOutside" bson:"deliveryChargeOutside"`
	BroadcastText         string    `json:"broadcastText" bson:"broadcastText"`
	BroadcastColor        string    `json:"broadcastColor" bson:"broadcastColor"`
	Theme                 Theme     `json:"theme" bson:"theme"`
	Social                Social    `json:"social" bson:"social"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DefaultSiteSettings returns the settings used when no document exists.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		AdminPassword:         DefaultAdminPassword,
		DeliveryChargeInside:  60,
		DeliveryChargeOutside: 120,
		BroadcastColor:        "#e11d48",
		Theme: Theme{
			Primary:    "#0f172a",
			Accent:     "#e11d48",
			Background: "#ffffff",
		},
	}
}

// HasBroadcast reports whether a broadcast line should be shown.
func (s SiteSettings) HasBroadcast() bool {
	return s.BroadcastText != ""
}

// SiteSettingsPatch is a partial settings update. Nil fields are left untouched.
type SiteSettingsPatch struct {
	AdminPassword         *string  `json:"adminPassword,omitempty" yaml:"adminPassword,omitempty"`
	DeliveryChargeInside  *float64 `json:"deliveryChargeInside,omitempty" yaml:"deliveryChargeInside,omitempty"`
	DeliveryChargeOutside *float64 `json:"deliveryChargeOutside,omitempty" yaml:"deliveryChargeOutside,omitempty"`
	BroadcastText         *string  `json:"broadcastText,omitempty" yaml:"broadcastText,omitempty"`
	BroadcastColor        *string  `json:"broadcastColor,omitempty" yaml:"broadcastColor,omitempty"`
	ThemePrimary          *string  `json:"themePrimary,omitempty" yaml:"themePrimary,omitempty"`
	ThemeAccent           *string  `json:"themeAccent,omitempty" yaml:"themeAccent,omitempty"`
	ThemeBackground       *string  `json:"themeBackground,omitempty" yaml:"themeBackground,omitempty"`
	Facebook              *string  `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Instagram             *string  `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	WhatsApp              *string  `json:"whatsapp,omitempty" yaml:"whatsapp,omitempty"`
	YouTube               *string  `json:"youtube,omitempty" yaml:"youtube,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SiteSettingsPatch) IsEmpty() bool {
	return p == SiteSettingsPatch{}
}

// Apply merges the patch into s and returns the result.
func (p SiteSettingsPatch) Apply(s SiteSettings) SiteSettings {
	setString(&s.AdminPassword, p.AdminPassword)
	setString(&s.BroadcastText, p.BroadcastText)
	setString(&s.BroadcastColor, p.BroadcastColor)
	setString(&s.Theme.Primary, p.ThemePrimary)
	setString(&s.Theme.Accent, p.ThemeAccent)
	setString(&s.Theme.Background, p.ThemeBackground)
	setString(&s.Social.Facebook, p.Facebook)
	setString(&s.Social.Instagram, p.Instagram)
	setString(&s.Social.WhatsApp, p.WhatsApp)
	setString(&s.Social.YouTube, p.YouTube)
	if p.DeliveryChargeInside != nil {
		s.DeliveryChargeInside = *p.DeliveryChargeInside
	}
	if p.DeliveryChargeOutside != nil {
		s.DeliveryChargeOutside = *p.DeliveryChargeOutside
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// LoginStat counts successful admin logins for one calendar day.
type LoginStat struct {
	// Date is the day in YYYY-MM-DD form; it doubles as the document id.
	Date        string    `json:"date" bson:"_id"`
	Count       int       `json:"count" bson:"count"`
	LastLoginAt time.Time `json:"lastLoginAt" bson:"lastLoginAt"`
}

// LoginStatDate formats t as a LoginStat date key.
func LoginStatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
