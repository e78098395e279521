package main

import (
	"context"
	"fmt"
	"scout-client/internal/domain"
	"scout-client/internal/guard"
	"scout-client/internal/navigation"
	"scout-client/internal/ui"

	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List subscription plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			plans, err := d.Subs.Plans(ctx)
			if err != nil {
				return err
			}
			printPlans(cmd.OutOrStdout(), plans)
			return nil
		})
	},
}

var subscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Show the current plan and what it unlocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := enforce(ctx, d, d.Guards.RequireAuth, guard.Route{FullPath: navigation.DashboardPath}); err != nil {
				return err
			}
			if err := d.Subs.Fetch(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := "none"
			if sub := d.Subs.Subscription(); sub != nil {
				status = string(sub.Status)
			}
			fmt.Fprintf(out, "tier:            %s (%s)\n", d.Subs.Tier(), status)
			fmt.Fprintf(out, "full matches:    %t\n", d.Subs.CanAccessFullMatches())
			fmt.Fprintf(out, "save players:    %t\n", d.Subs.CanSavePlayers())
			fmt.Fprintf(out, "request contact: %t\n", d.Subs.CanRequestContact())
			return nil
		})
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <tier>",
	Short: "Start a checkout for a plan and print the payment link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := domain.ParseTier(args[0])
		if err != nil {
			return err
		}
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := enforce(ctx, d, d.Guards.RequireAuth, guard.Route{FullPath: navigation.PricingPath}); err != nil {
				return err
			}
			ok, err := confirm(ctx, d, cmd.InOrStdin(), cmd.ErrOrStderr(), ui.ConfirmOptions{
				Title:       "Upgrade plan",
				Message:     fmt.Sprintf("Start checkout for the %s plan?", tier),
				ConfirmText: "Continue",
			})
			if err != nil || !ok {
				return err
			}

			url, err := d.Subs.CreateCheckoutSession(ctx, tier)
			if err != nil {
				d.Toasts.Error("Checkout failed", err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel-subscription",
	Short: "Cancel the current plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := enforce(ctx, d, d.Guards.RequireAuth, guard.Route{FullPath: navigation.DashboardPath}); err != nil {
				return err
			}
			ok, err := confirm(ctx, d, cmd.InOrStdin(), cmd.ErrOrStderr(), ui.ConfirmOptions{
				Title:          "Cancel subscription",
				Message:        "You will lose access to paid features.",
				ConfirmText:    "Cancel plan",
				CancelText:     "Keep plan",
				ConfirmVariant: ui.VariantDanger,
			})
			if err != nil || !ok {
				return err
			}
			if err := d.Subs.Cancel(ctx); err != nil {
				return err
			}
			d.Toasts.Success("Subscription cancelled", "")
			return nil
		})
	},
}
