package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/dashboard"
	"github.com/KaramelBytes/catalogdash/internal/tui"
	"github.com/KaramelBytes/catalogdash/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	statsFormat     string
	statsOutputPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the filtered catalog (counts, averages, distributions)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, r, err := evaluate(cmd)
		if err != nil {
			return err
		}
		format := strings.ToLower(strings.TrimSpace(statsFormat))
		if format == "" || format == "auto" {
			format = "markdown"
			if statsOutputPath == "" && isTerminal(os.Stdout) {
				format = "pretty"
			}
		}
		out, err := renderStats(r, format)
		if err != nil {
			return err
		}

		if statsOutputPath != "" {
			if err := utils.SafeWriteFile(statsOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote stats to %s\n", statsOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func renderStats(r dashboard.Result, format string) (string, error) {
	switch format {
	case "markdown", "md", "text":
		return r.Metrics.Markdown(), nil
	case "json":
		b, err := utils.PrettyJSON(r)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case "yaml", "yml":
		b, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(b), nil
	case "pretty":
		return tui.RenderSummary(r.Metrics, terminalWidth(os.Stdout)) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use auto|markdown|json|yaml|pretty)", format)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of f, or 100 when it is not a terminal.
func terminalWidth(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

func init() {
	rootCmd.AddCommand(statsCmd)
	dataFlags.register(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "auto", "output format: auto|markdown|json|yaml|pretty")
	statsCmd.Flags().StringVarP(&statsOutputPath, "output", "o", "", "write the report to a file instead of stdout")
}
