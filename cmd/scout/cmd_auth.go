package main

import (
	"context"
	"fmt"
	"os"
	"scout-client/internal/domain"

	"github.com/spf13/cobra"
)

var (
	email     string
	password  string
	firstName string
	lastName  string
	orgName   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := d.Session.Login(ctx, email, passwordValue()); err != nil {
				d.Toasts.Error("Sign in failed", err.Error())
				return err
			}
			u := d.Session.User()
			d.Toasts.Success("Signed in", fmt.Sprintf("Welcome back, %s", u.FirstName))
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a scout account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			err := d.Session.Register(ctx, domain.RegisterRequest{
				Email:            email,
				Password:         passwordValue(),
				FirstName:        firstName,
				LastName:         lastName,
				OrganizationName: orgName,
			})
			if err != nil {
				d.Toasts.Error("Registration failed", err.Error())
				return err
			}
			d.Toasts.Success("Account created", email)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if d.Session.IsAuthenticated() {
				if err := d.Account.Logout(ctx); err != nil {
					d.Logger.Warn().Err(err).Msg("server logout failed")
				}
			}
			d.Session.Logout(ctx)
			d.Toasts.Info("Signed out", "")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			out := cmd.OutOrStdout()
			u := d.Session.User()
			if !d.Session.IsAuthenticated() || u == nil {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			fmt.Fprintf(out, "%s %s <%s>\nrole: %s\n", u.FirstName, u.LastName, u.Email, u.Role)
			return nil
		})
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, d deps) error {
			if err := d.Auth.ForgotPassword(ctx, email); err != nil {
				return err
			}
			d.Toasts.Info("Check your inbox", "If the address is registered a reset link is on its way")
			return nil
		})
	},
}

// passwordValue prefers the flag and falls back to SCOUT_PASSWORD.
func passwordValue() string {
	if password != "" {
		return password
	}
	return os.Getenv("SCOUT_PASSWORD")
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd, forgotPasswordCmd} {
		c.Flags().StringVar(&email, "email", "", "Account email")
		_ = c.MarkFlagRequired("email")
	}
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&password, "password", "", "Account password (or set SCOUT_PASSWORD)")
	}
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&orgName, "organization", "", "Club or agency name")
}
