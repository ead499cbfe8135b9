package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"transit-cnmi/internal/category"
	"transit-cnmi/internal/driver"
)

func routesCmd() *cobra.Command {
	var chip, query string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List bus routes, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, r := range category.SearchRoutes(cat.Routes, query, chip) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.NextArrival, r.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&chip, "category", "c", category.All, "route category: all, express, local, airport")
	cmd.Flags().StringVarP(&query, "query", "q", "", "text to match in name or description")
	return cmd
}

func guideCmd() *cobra.Command {
	var chip string
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "List tourist guide attractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, a := range category.Attractions(cat.Attractions, chip) {
				fmt.Fprintf(out, "%s\t%.1f\t%s\n", a.Name, a.Rating, a.TransitInfo)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&chip, "category", "c", category.All, "guide category")
	return cmd
}

func stopsCmd() *cobra.Command {
	var routeID string
	cmd := &cobra.Command{
		Use:   "stops",
		Short: "Show the stop list a driver sees for a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			sl, err := driver.OpenStops(cat, map[string]string{driver.ParamRouteID: routeID})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", sl.Route().Name)
			for _, s := range sl.Stops() {
				fmt.Fprintf(out, "%s\t%s\t%s\t%d checked in\n", s.Time, s.Name, driver.StatusLabel(s.Status), s.CheckedIn)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&routeID, "route", "r", "", "route id (default "+driver.DefaultRouteID+")")
	return cmd
}
