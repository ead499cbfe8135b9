// Package commands implements transitctl, a local tool for querying the
// reference catalog and editing the stored theme preference.
package commands

import (
	"github.com/spf13/cobra"

	"transit-cnmi/internal/catalog"
)

var (
	catalogPath string
	storeDriver string
	storeDSN    string

	cat *catalog.Catalog
)

func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree. Flags bind to package state, so build
// one root per invocation.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "transitctl",
		Short:        "Query the CNMI transit catalog and local preferences",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			cat = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: built-in)")
	root.PersistentFlags().StringVar(&storeDriver, "store", "sqlite", "preference store: sqlite, postgres or memory")
	root.PersistentFlags().StringVar(&storeDSN, "dsn", "data/transit.db", "sqlite path or postgres URL")

	root.AddCommand(searchCmd(), routesCmd(), guideCmd(), stopsCmd(), themeCmd())
	return root
}
