package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"transit-cnmi/internal/search"
)

func searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search destinations by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			results := search.Destinations(cat.Destinations, q, search.ClampLimit(limit))
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No destinations match %q\n", q)
				return nil
			}
			for _, d := range results {
				fmt.Fprintf(out, "%s\t%s\n", d.Name, d.Category)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "max results (5-8)")
	return cmd
}
