package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/selection"
	"github.com/KaramelBytes/catalogdash/internal/utils"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show every field of one filtered title",
	Long: `Show every field of the title at <index> in the filtered list.
Indexes are 0-based and match the # column printed by rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		s, r, err := evaluate(cmd)
		if err != nil {
			return err
		}
		t, err := s.Select(idx)
		if err != nil {
			if errors.Is(err, selection.ErrIndexOutOfRange) {
				return fmt.Errorf("no title at index %d (%d titles match)", idx, r.View.Len())
			}
			return err
		}
		if showJSON {
			b, err := utils.PrettyJSON(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		writeDetail(cmd.OutOrStdout(), t, r.View.Columns)
		return nil
	},
}

// writeDetail prints one "column: value" line per source column.
func writeDetail(w io.Writer, t *catalog.Title, columns []string) {
	width := 0
	for _, c := range columns {
		if len(c) > width {
			width = len(c)
		}
	}
	fmt.Fprintf(w, "[%s]\n", strings.ToUpper(t.Title))
	for _, c := range columns {
		v := t.Value(c)
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, c, v)
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	dataFlags.register(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the title as JSON")
}
