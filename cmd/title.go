package cmd

import (
	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/output"
	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title <handle>",
	Short: "Resolve the title of one window",
	Long: `Resolve the title of a window handle (decimal or 0x-prefixed hex).

The direct window-text call is tried first. When it fails or returns an empty
string, the title is read from the accessibility tree instead.

Examples:
  wintitle title 0x20304
  wintitle title 131844 --accessibility-only
  wintitle title 0x20304 --timeout 500ms --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)
	titleCmd.Flags().Bool("accessibility-only", false, "Skip the direct call and read the accessibility tree only")
	titleCmd.Flags().Duration("timeout", 0, "Fallback time budget (0 = use config)")
	titleCmd.Flags().Bool("pretty", false, "Pretty-print JSON")
}

func runTitle(cmd *cobra.Command, args []string) error {
	h, err := model.ParseHandle(args[0])
	if err != nil {
		return err
	}
	accessibilityOnly, _ := cmd.Flags().GetBool("accessibility-only")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	provider, err := newWindowInfo(true, timeout)
	if err != nil {
		return err
	}

	var w model.Window
	if accessibilityOnly {
		w = provider.AccessibilityTitle(cmd.Context(), h)
	} else {
		w = provider.Title(cmd.Context(), h)
	}
	return output.Print(output.TitleResult{Found: w.Source != "", Window: w})
}
