package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	cfgpkg "github.com/KaramelBytes/catalogdash/internal/config"
	"github.com/KaramelBytes/catalogdash/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set catalogdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", c.DataPath)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(out, "top_countries: %d\n", c.TopCountries)
		fmt.Fprintf(out, "top_genres: %d\n", c.TopGenres)
		fmt.Fprintf(out, "default_columns: %s\n", strings.Join(c.DefaultColumns, ","))
		fmt.Fprintf(out, "row_limit: %d\n", c.RowLimit)
		if c.LogFile != "" {
			fmt.Fprintf(out, "log_file: %s\n", c.LogFile)
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. Keys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "data_path":
			c.DataPath = val
		case "delimiter":
			if len([]rune(val)) > 1 && val != "tab" && val != `\t` {
				return fmt.Errorf("invalid delimiter: %q (use a single character or tab)", val)
			}
			c.Delimiter = val
		case "sheet_name":
			c.SheetName = val
		case "top_countries", "top_genres", "row_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "top_countries":
				c.TopCountries = i
			case "top_genres":
				c.TopGenres = i
			default:
				c.RowLimit = i
			}
		case "default_columns":
			cols := catalog.SplitList(strings.ToLower(val))
			if len(cols) == 0 {
				return fmt.Errorf("default_columns needs at least one column")
			}
			c.DefaultColumns = cols
		case "log_file":
			c.LogFile = val
		case "log_level":
			lvl := strings.ToUpper(val)
			if _, ok := logging.KnownLevel(lvl); !ok {
				return fmt.Errorf("invalid log_level: %s (use DEBUG, INFO, WARN or ERROR)", val)
			}
			c.LogLevel = lvl
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		path, _ := cfgpkg.Path(cfgFile)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
