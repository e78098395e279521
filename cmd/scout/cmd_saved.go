package main

import (
	"context"
	"fmt"
	"scout-client/internal/domain"
	"scout-client/internal/guard"
	"scout-client/internal/ui"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var contactMessage string

// tierRoute guards a route that needs a session and the given tier.
func tierRoute(ctx context.Context, d deps, path string, tier domain.Tier) error {
	g := guard.Chain(d.Guards.RequireAuth, d.Guards.Subscription)
	return enforce(ctx, d, g, guard.Route{FullPath: path, RequiredTier: tier})
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := tierRoute(ctx, d, "/saved", ""); err != nil {
				return err
			}
			players, err := d.Account.SavedPlayers(ctx)
			if err != nil {
				return err
			}
			printPlayers(cmd.OutOrStdout(), players)
			return nil
		})
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <player-id>",
	Short: "Save a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := tierRoute(ctx, d, "/saved", domain.TierScout); err != nil {
				return err
			}
			if err := d.Account.SavePlayer(ctx, args[0]); err != nil {
				d.Toasts.Error("Could not save player", err.Error())
				return err
			}
			d.Toasts.Success("Player saved", "")
			return nil
		})
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <player-id>",
	Short: "Remove a saved player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := tierRoute(ctx, d, "/saved", ""); err != nil {
				return err
			}
			ok, err := confirm(ctx, d, cmd.InOrStdin(), cmd.ErrOrStderr(), ui.ConfirmOptions{
				Title:          "Remove player",
				Message:        "Remove this player from your saved list?",
				ConfirmText:    "Remove",
				ConfirmVariant: ui.VariantDanger,
				Icon:           "trash",
			})
			if err != nil || !ok {
				return err
			}
			if err := d.Account.RemoveSavedPlayer(ctx, args[0]); err != nil {
				return err
			}
			d.Toasts.Success("Player removed", "")
			return nil
		})
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact <player-id>",
	Short: "Ask to be put in touch with a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := tierRoute(ctx, d, "/players/"+args[0]+"/contact", domain.TierPro); err != nil {
				return err
			}
			if err := d.Account.RequestContact(ctx, args[0], contactMessage); err != nil {
				d.Toasts.Error("Contact request failed", err.Error())
				return err
			}
			d.Toasts.Success("Contact request sent", "We will forward it to the player's guardian")
			return nil
		})
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contact requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := tierRoute(ctx, d, "/contacts", ""); err != nil {
				return err
			}
			contacts, err := d.Account.Contacts(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLAYER\tSTATUS\tSENT")
			for _, c := range contacts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.PlayerName, c.Status, c.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		})
	},
}

func init() {
	savedCmd.AddCommand(savedAddCmd, savedRemoveCmd)
	contactCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "Message to include")
}
