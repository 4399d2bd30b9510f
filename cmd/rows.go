package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/dashboard"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/utils"
	"github.com/spf13/cobra"
)

var (
	rowsColumns []string
	rowsLimit   int
	rowsFormat  string
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print the filtered titles as a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, r, err := evaluate(cmd)
		if err != nil {
			return err
		}
		columns := rowsColumns
		if len(columns) == 0 {
			columns = cfg.DefaultColumns
		}
		limit := rowsLimit
		if !cmd.Flags().Changed("limit") {
			limit = cfg.RowLimit
		}
		view := r.View
		if limit > 0 && view.Len() > limit {
			view.Titles = view.Titles[:limit]
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(rowsFormat) {
		case "table", "":
			return writeTable(out, view, columns, r.View.Len())
		case "csv":
			b, err := dashboard.EncodeCSV(view, columns)
			if err != nil {
				return err
			}
			_, err = out.Write(b)
			return err
		case "json":
			b, err := utils.PrettyJSON(view.Titles)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		default:
			return fmt.Errorf("unsupported --format: %s (use table|csv|json)", rowsFormat)
		}
	},
}

// writeTable prints an aligned table with a leading row number, as shown by `show`.
func writeTable(w io.Writer, v filter.View, columns []string, total int) error {
	if v.Len() == 0 {
		_, err := fmt.Fprintln(w, "(no titles match)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := append([]string{"#"}, columns...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i, t := range v.Titles {
		cells := make([]string, len(columns)+1)
		cells[0] = fmt.Sprint(i)
		for j, c := range columns {
			cells[j+1] = cell(t, c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if total > v.Len() {
		fmt.Fprintf(w, "… %d of %d titles shown\n", v.Len(), total)
	}
	return nil
}

func cell(t *catalog.Title, column string) string {
	s := strings.NewReplacer("\t", " ", "\n", " ").Replace(t.Value(column))
	if r := []rune(s); len(r) > 48 {
		s = string(r[:47]) + "…"
	}
	return s
}

func init() {
	rootCmd.AddCommand(rowsCmd)
	dataFlags.register(rowsCmd)
	rowsCmd.Flags().StringSliceVar(&rowsColumns, "columns", nil, "columns to print (default from config: title,type,release_year,country,duration)")
	rowsCmd.Flags().IntVar(&rowsLimit, "limit", 0, "print at most this many rows (0 = all)")
	rowsCmd.Flags().StringVar(&rowsFormat, "format", "table", "output format: table|csv|json")
}
