package main

import (
	"context"
	"fmt"
	"scout-client/internal/guard"
	"scout-client/internal/navigation"
	"scout-client/internal/search"
	"strings"

	"github.com/spf13/cobra"
)

var (
	position     string
	country      string
	ageMin       int
	ageMax       int
	verifiedOnly bool
	tournamentID string
	pages        int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search players",
	Long: `Search players by name with optional filters.

--pages loads further pages after the first. Follow-up pages keep only
the query, position and country filters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := enforce(ctx, d, d.Guards.RequireAuth, guard.Route{FullPath: navigation.DiscoverPath}); err != nil {
				return err
			}

			s := d.Search
			s.SetQuery(strings.Join(args, " "))
			filters := []struct {
				key   search.FilterKey
				value any
				set   bool
			}{
				{search.FilterPosition, position, position != ""},
				{search.FilterCountry, country, country != ""},
				{search.FilterAgeMin, ageMin, ageMin > 0},
				{search.FilterAgeMax, ageMax, ageMax > 0},
				{search.FilterVerifiedOnly, verifiedOnly, verifiedOnly},
				{search.FilterTournamentID, tournamentID, tournamentID != ""},
			}
			for _, f := range filters {
				if !f.set {
					continue
				}
				if err := s.SetFilter(f.key, f.value); err != nil {
					return err
				}
			}

			if err := s.Search(ctx); err != nil {
				d.Toasts.Error("Search failed", err.Error())
				return err
			}
			for i := 1; i < pages; i++ {
				if err := s.LoadMore(ctx); err != nil {
					d.Toasts.Warning("Could not load more results", err.Error())
					break
				}
			}

			snap := s.Snapshot()
			printPlayers(cmd.OutOrStdout(), snap.Results)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d players, page %d/%d\n",
				len(snap.Results), snap.Pagination.Total, snap.Pagination.Page, snap.Pagination.TotalPages)
			return nil
		})
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show one player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			route := guard.Route{FullPath: "/players/" + args[0]}
			if err := enforce(ctx, d, d.Guards.RequireAuth, route); err != nil {
				return err
			}
			p, err := d.Players.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.FullName())
			fmt.Fprintf(out, "position:   %s\n", p.Position)
			fmt.Fprintf(out, "born:       %s\n", p.DateOfBirth)
			fmt.Fprintf(out, "location:   %s\n", strings.Trim(strings.Join([]string{p.City, p.State, p.Country}, ", "), ", "))
			fmt.Fprintf(out, "verified:   %t (%s)\n", p.IsVerified, p.VerificationStatus)
			if p.AcademyName != "" {
				fmt.Fprintf(out, "academy:    %s\n", p.AcademyName)
			}
			if p.HeightCm > 0 {
				fmt.Fprintf(out, "height:     %d cm\n", p.HeightCm)
			}
			return nil
		})
	},
}

func init() {
	searchCmd.Flags().StringVar(&position, "position", "", "Position, e.g. Striker")
	searchCmd.Flags().StringVar(&country, "country", "", "Country")
	searchCmd.Flags().IntVar(&ageMin, "age-min", 0, "Minimum age")
	searchCmd.Flags().IntVar(&ageMax, "age-max", 0, "Maximum age")
	searchCmd.Flags().BoolVar(&verifiedOnly, "verified", false, "Only verified players")
	searchCmd.Flags().StringVar(&tournamentID, "tournament", "", "Tournament id")
	searchCmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
}
