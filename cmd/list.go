package cmd

import (
	"time"

	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/output"
	"github.com/mj1618/wintitle/internal/windowinfo"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List top-level windows and their titles",
	Long:  "List top-level windows with handle, title, title source, class, and PID. Empty titles are resolved through the accessibility tree.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all", false, "Include invisible windows")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("class", "", "Filter windows by class name substring")
	listCmd.Flags().String("title", "", "Filter windows by title substring")
	listCmd.Flags().Bool("no-fallback", false, "Do not consult the accessibility tree for empty titles")
	listCmd.Flags().Bool("pretty", false, "Pretty-print JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	pid, _ := cmd.Flags().GetInt("pid")
	class, _ := cmd.Flags().GetString("class")
	titleFilter, _ := cmd.Flags().GetString("title")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")

	provider, err := newWindowInfo(!noFallback, 0)
	if err != nil {
		return err
	}

	windows, err := provider.List(cmd.Context(), windowinfo.ListOptions{
		All:   all,
		PID:   pid,
		Class: class,
		Title: titleFilter,
	})
	if err != nil {
		return err
	}
	if windows == nil {
		windows = []model.Window{}
	}

	return output.Print(output.ListResult{
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}
