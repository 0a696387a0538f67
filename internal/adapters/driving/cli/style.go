package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	styleContext string
	styleJSON    bool
)

var styleCmd = &cobra.Command{
	Use:   "style [question...]",
	Short: "Ask the style assistant",
	Long: `Asks the configured LLM for outfit advice, suggested colours, and a vibe.

Examples:
  haat style what should I wear to a winter wedding
  haat style --context "budget under 3000" eid outfit for men`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStyle,
}

func init() {
	styleCmd.Flags().StringVar(&styleContext, "context", "", "extra context for the assistant")
	styleCmd.Flags().BoolVar(&styleJSON, "json", false, "output advice as JSON")
	rootCmd.AddCommand(styleCmd)
}

func runStyle(cmd *cobra.Command, args []string) error {
	if styleAssistant == nil {
		return errors.New("style assistant not configured: run 'haat settings llm'")
	}

	advice, err := styleAssistant.Advise(cmd.Context(), strings.Join(args, " "), styleContext)
	if err != nil {
		return fmt.Errorf("style advice failed: %w", err)
	}

	if styleJSON {
		data, err := json.MarshalIndent(advice, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal advice: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(advice.Advice)
	if len(advice.SuggestedColors) > 0 {
		cmd.Printf("\nColours: %s\n", strings.Join(advice.SuggestedColors, ", "))
	}
	if advice.Vibe != "" {
		cmd.Printf("Vibe: %s\n", advice.Vibe)
	}
	return nil
}
