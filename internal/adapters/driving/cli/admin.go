package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin session and storefront settings",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Unlock admin commands",
	Long: `Prompts for the admin password and stores a session until logout.
The session ends when the admin password is changed.`,
	Args: cobra.NoArgs,
	RunE: runAdminLogin,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the admin session",
	Args:  cobra.NoArgs,
	RunE:  runAdminLogout,
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show admin logins per day",
	Args:  cobra.NoArgs,
	RunE:  runAdminStats,
}

var adminSiteCmd = &cobra.Command{
	Use:   "site",
	Short: "Storefront settings",
	RunE:  runAdminSiteShow,
}

var adminSiteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show storefront settings",
	Args:  cobra.NoArgs,
	RunE:  runAdminSiteShow,
}

var adminSiteSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update storefront settings",
	Long: `Merges the given flags into the storefront settings. Unset flags are left unchanged.

Examples:
  haat admin site set --delivery-inside 70 --delivery-outside 130
  haat admin site set --broadcast "Eid sale: 20% off" --broadcast-color "#16a34a"`,
	Args: cobra.NoArgs,
	RunE: runAdminSiteSet,
}

var (
	sitePassword        string
	siteDeliveryInside  float64
	siteDeliveryOutside float64
	siteBroadcast       string
	siteBroadcastColor  string
	siteThemePrimary    string
	siteThemeAccent     string
	siteThemeBackground string
	siteFacebook        string
	siteInstagram       string
	siteWhatsApp        string
	siteYouTube         string
)

func init() {
	f := adminSiteSetCmd.Flags()
	f.StringVar(&sitePassword, "password", "", "new admin password")
	f.Float64Var(&siteDeliveryInside, "delivery-inside", 0, "delivery charge inside the city")
	f.Float64Var(&siteDeliveryOutside, "delivery-outside", 0, "delivery charge outside the city")
	f.StringVar(&siteBroadcast, "broadcast", "", "broadcast line shown on the storefront (empty hides it)")
	f.StringVar(&siteBroadcastColor, "broadcast-color", "", "broadcast background colour")
	f.StringVar(&siteThemePrimary, "theme-primary", "", "primary theme colour")
	f.StringVar(&siteThemeAccent, "theme-accent", "", "accent theme colour")
	f.StringVar(&siteThemeBackground, "theme-background", "", "background theme colour")
	f.StringVar(&siteFacebook, "facebook", "", "Facebook page link")
	f.StringVar(&siteInstagram, "instagram", "", "Instagram link")
	f.StringVar(&siteWhatsApp, "whatsapp", "", "WhatsApp link")
	f.StringVar(&siteYouTube, "youtube", "", "YouTube link")

	adminSiteCmd.AddCommand(adminSiteShowCmd)
	adminSiteCmd.AddCommand(adminSiteSetCmd)

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminSiteCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminLogin(cmd *cobra.Command, _ []string) error {
	if adminGate == nil {
		return errors.New("admin gate not configured")
	}

	cmd.Print("Admin password: ")
	password := readPassword(cmd, bufio.NewReader(cmd.InOrStdin()))
	cmd.Println()

	if err := adminGate.Login(cmd.Context(), password); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return errors.New("access denied")
		}
		return fmt.Errorf("login failed: %w", err)
	}
	cmd.Println("Logged in.")
	return nil
}

func runAdminLogout(cmd *cobra.Command, _ []string) error {
	if adminGate == nil {
		return errors.New("admin gate not configured")
	}
	if err := adminGate.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runAdminStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	stats, err := statsService.Logins(ctx)
	if err != nil {
		return fmt.Errorf("failed to load login stats: %w", err)
	}
	if len(stats) == 0 {
		cmd.Println("No logins recorded.")
		return nil
	}
	cmd.Println("Admin logins")
	for _, s := range stats {
		cmd.Printf("  %s  %d\n", s.Date, s.Count)
	}
	return nil
}

func runAdminSiteShow(cmd *cobra.Command, _ []string) error {
	if siteSettingsService == nil {
		return errors.New("site settings service not configured")
	}

	s, err := siteSettingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load site settings: %w", err)
	}

	cmd.Println("[Delivery]")
	cmd.Printf("  Inside city:  %s\n", formatPrice(s.DeliveryChargeInside))
	cmd.Printf("  Outside city: %s\n", formatPrice(s.DeliveryChargeOutside))
	cmd.Println()
	cmd.Println("[Broadcast]")
	if s.HasBroadcast() {
		cmd.Printf("  %s (%s)\n", s.BroadcastText, s.BroadcastColor)
	} else {
		cmd.Println("  (off)")
	}
	cmd.Println()
	cmd.Println("[Theme]")
	cmd.Printf("  Primary: %s  Accent: %s  Background: %s\n", s.Theme.Primary, s.Theme.Accent, s.Theme.Background)
	cmd.Println()
	cmd.Println("[Social]")
	printLink(cmd, "Facebook", s.Social.Facebook)
	printLink(cmd, "Instagram", s.Social.Instagram)
	printLink(cmd, "WhatsApp", s.Social.WhatsApp)
	printLink(cmd, "YouTube", s.Social.YouTube)
	return nil
}

func runAdminSiteSet(cmd *cobra.Command, _ []string) error {
	if siteSettingsService == nil {
		return errors.New("site settings service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	patch := sitePatchFromFlags(cmd)
	if patch.IsEmpty() {
		return errors.New("nothing to update: pass at least one flag")
	}
	if _, err := siteSettingsService.Update(ctx, patch); err != nil {
		return fmt.Errorf("failed to update site settings: %w", err)
	}
	cmd.Println("Site settings updated.")
	if patch.AdminPassword != nil {
		cmd.Println("Admin password changed; log in again with the new password.")
	}
	return nil
}

// sitePatchFromFlags includes only the flags the user set.
func sitePatchFromFlags(cmd *cobra.Command) domain.SiteSettingsPatch {
	flags := cmd.Flags()
	var p domain.SiteSettingsPatch
	str := func(name string, v string, dst **string) {
		if flags.Changed(name) {
			*dst = &v
		}
	}
	num := func(name string, v float64, dst **float64) {
		if flags.Changed(name) {
			*dst = &v
		}
	}
	str("password", sitePassword, &p.AdminPassword)
	num("delivery-inside", siteDeliveryInside, &p.DeliveryChargeInside)
	num("delivery-outside", siteDeliveryOutside, &p.DeliveryChargeOutside)
	str("broadcast", siteBroadcast, &p.BroadcastText)
	str("broadcast-color", siteBroadcastColor, &p.BroadcastColor)
	str("theme-primary", siteThemePrimary, &p.ThemePrimary)
	str("theme-accent", siteThemeAccent, &p.ThemeAccent)
	str("theme-background", siteThemeBackground, &p.ThemeBackground)
	str("facebook", siteFacebook, &p.Facebook)
	str("instagram", siteInstagram, &p.Instagram)
	str("whatsapp", siteWhatsApp, &p.WhatsApp)
	str("youtube", siteYouTube, &p.YouTube)
	return p
}

func printLink(cmd *cobra.Command, label, link string) {
	if link == "" {
		link = "(not set)"
	}
	cmd.Printf("  %-10s %s\n", label+":", link)
}
