package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KaramelBytes/catalogdash/internal/logging"
	"github.com/KaramelBytes/catalogdash/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	dashExportPath string
	dashColumns    []string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui", "tui"},
	Short:   "Open the interactive dashboard",
	Long: `Open the interactive terminal dashboard. Filter flags set the initial state;
every change re-filters the catalog and refreshes the summary, charts and table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return fmt.Errorf("dashboard needs an interactive terminal; use stats, rows or export instead")
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		// stderr is covered by the alt screen
		if c.LogFile == "" {
			logger = logging.NullLogger()
			slog.SetDefault(logger)
		}

		s, notice, err := openSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		p, err := dataFlags.params(cmd, s.Dataset())
		if err != nil {
			return err
		}
		columns := dashColumns
		if len(columns) == 0 {
			columns = c.DefaultColumns
		}
		model := tui.NewModel(s, tui.Options{
			Columns:    columns,
			ExportPath: dashExportPath,
			Params:     &p,
			Notice:     notice,
		})
		logger.Info("dashboard started", "titles", s.Dataset().Len())
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dataFlags.register(dashboardCmd)
	dashboardCmd.Flags().StringVarP(&dashExportPath, "output", "o", "filtered_titles.csv", "file written by the export key")
	dashboardCmd.Flags().StringSliceVar(&dashColumns, "columns", nil, "table columns (default from config)")
}
