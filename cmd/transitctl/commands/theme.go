package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"transit-cnmi/internal/store"
	"transit-cnmi/internal/theme"
)

// withSettings opens the preference store, loads the saved theme and runs fn.
func withSettings(cmd *cobra.Command, fn func(*theme.Settings) error) error {
	st, err := store.Open(cmd.Context(), storeDriver, storeDSN)
	if err != nil {
		return err
	}
	defer st.Close()
	s := theme.NewSettings(st, theme.FixedScheme(theme.Light))
	s.Load(cmd.Context())
	return fn(s)
}

func printTheme(cmd *cobra.Command, s *theme.Settings) {
	fmt.Fprintf(cmd.OutOrStdout(), "preference: %s\nresolved: %s\n", s.Preference(), s.Resolved())
}

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the saved theme preference",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the saved preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(cmd, func(s *theme.Settings) error {
				printTheme(cmd, s)
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:       "set <system|light|dark>",
		Short:     "Save a preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.System), string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := theme.ParsePreference(args[0])
			if err != nil {
				return err
			}
			return withSettings(cmd, func(s *theme.Settings) error {
				if err := s.Set(cmd.Context(), p); err != nil {
					return err
				}
				printTheme(cmd, s)
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(cmd, func(s *theme.Settings) error {
				if _, err := s.Toggle(cmd.Context()); err != nil {
					return err
				}
				printTheme(cmd, s)
				return nil
			})
		},
	}

	cmd.AddCommand(get, set, toggle)
	return cmd
}
