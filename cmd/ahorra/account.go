package main

import (
	"context"
	"fmt"

	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/spf13/cobra"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show and edit your profile",
	}

	cmd.AddCommand(showAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(passwordCmd())

	return cmd
}

func withAccount(ctx context.Context, fn func(*pages.Account) error) error {
	return withApp(ctx, pages.RouteAccount, func(a *app, _ *model.User) error {
		acc := pages.NewAccount(a.deps())
		defer acc.Close()
		if err := acc.Load(ctx); err != nil {
			return failed(err, pages.MsgLoadProfile)
		}
		return fn(acc)
	})
}

func showAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAccount(cmd.Context(), func(acc *pages.Account) error {
				user := acc.Profile()
				printUser(cmd.OutOrStdout(), &user)
				return nil
			})
		},
	}
}

func updateAccountCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your name or email",
		Long:  `Change your name or email. Changing the email ends the session and you must log in again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withAccount(ctx, func(acc *pages.Account) error {
				current := acc.Profile()
				form := validate.ProfileForm{Name: current.Name, Email: current.Email}
				if cmd.Flags().Changed("name") {
					form.Name = name
				}
				if cmd.Flags().Changed("email") {
					form.Email = email
				}

				emailChanged, err := acc.UpdateProfile(ctx, form)
				if err != nil {
					return failed(err, pages.MsgSaveProfile)
				}
				out := cmd.OutOrStdout()
				if emailChanged {
					if err := acc.Logout(ctx); err != nil {
						return err
					}
					fmt.Fprintln(out, cli.FormatWarning("Your email changed. Log in again with 'ahorra login'."))
					return nil
				}
				fmt.Fprintln(out, cli.FormatSuccess(acc.Notice()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}

func passwordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := prompter(cmd)
			current, err := readSecret(ctx, cmd, p, "Current password")
			if err != nil {
				return err
			}
			next, err := readSecret(ctx, cmd, p, "New password")
			if err != nil {
				return err
			}
			confirm, err := readSecret(ctx, cmd, p, "Confirm new password")
			if err != nil {
				return err
			}

			return withAccount(ctx, func(acc *pages.Account) error {
				if err := acc.ChangePassword(ctx, validate.PasswordForm{Current: current, New: next, Confirm: confirm}); err != nil {
					return failed(err, pages.MsgChangePassword)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(acc.Notice()))
				return nil
			})
		},
	}
}

func plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "Show the subscription plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), pages.RoutePlans, func(_ *app, user *model.User) error {
				out := cmd.OutOrStdout()
				plans := pages.NewPlans(user)
				fmt.Fprintln(out, cli.FormatTitle("Plans"))
				for _, p := range plans.List() {
					tag := ""
					switch {
					case p.Current:
						tag = cli.SuccessStyle.Render(" (current)")
					case p.Upcoming:
						tag = cli.SubtleStyle.Render(" (coming soon)")
					}
					fmt.Fprintf(out, "%s%s\n  %s\n", cli.BoldStyle.Render(p.Name), tag, p.Summary)
				}
				if plans.ShowUpgradeNotice() {
					fmt.Fprintln(out)
					fmt.Fprintln(out, cli.FormatInfo(pages.MsgCheckoutPending))
				}
				return nil
			})
		},
	}
}
