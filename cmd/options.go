package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/utils"
	"github.com/spf13/cobra"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the types, years, countries, genres and ratings available to filter on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		o := filter.Options(s.Dataset())
		out := cmd.OutOrStdout()
		if optionsJSON {
			b, err := utils.PrettyJSON(o)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		section := func(name string, values []string) {
			fmt.Fprintf(out, "[%s] (%d)\n", name, len(values))
			if len(values) > 0 {
				fmt.Fprintln(out, strings.Join(values, ", "))
			}
			fmt.Fprintln(out)
		}
		section("TYPES", o.Kinds)
		fmt.Fprintln(out, "[YEARS]")
		if o.HasYears {
			fmt.Fprintf(out, "%d – %d\n\n", o.Years.Low, o.Years.High)
		} else {
			fmt.Fprint(out, "no release years\n\n")
		}
		section("COUNTRIES", o.Countries)
		section("GENRES", o.Genres)
		section("RATINGS", o.Ratings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "print options as JSON")
}
