package cmd

import (
	"fmt"

	"github.com/KaramelBytes/catalogdash/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	exportOutputPath string
	exportColumns    []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered titles to a CSV file",
	Long: `Write the filtered titles to a CSV file with a header row and no index column.
By default every source column is written in source order. Use -o - for stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, r, err := evaluate(cmd)
		if err != nil {
			return err
		}
		if exportOutputPath == "-" {
			b, err := dashboard.EncodeCSV(r.View, exportColumns)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		n, err := dashboard.ExportCSV(exportOutputPath, r.View, exportColumns)
		if err != nil {
			return err
		}
		logger.Info("exported", "path", exportOutputPath, "rows", n)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d titles to %s\n", n, exportOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	dataFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "filtered_titles.csv", "destination file (- for stdout)")
	exportCmd.Flags().StringSliceVar(&exportColumns, "columns", nil, "columns to write (default: all source columns)")
}
