package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readSecret reads a password without echo on a terminal, or a plain line
// otherwise.
func readSecret(ctx context.Context, cmd *cobra.Command, p *cli.Prompter, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), cli.FormatPrompt(label))
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", label, err)
		}
		return string(b), nil
	}
	return p.Ask(ctx, label, "")
}

func prompter(cmd *cobra.Command) *cli.Prompter {
	return cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session on this device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := prompter(cmd)
			var err error
			if email == "" {
				if email, err = p.Ask(ctx, "Email", ""); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = readSecret(ctx, cmd, p, "Password"); err != nil {
					return err
				}
			}

			return withApp(ctx, pages.RouteLogin, func(a *app, _ *model.User) error {
				auth := pages.NewAuth(a.deps())
				user, err := auth.Login(ctx, validate.LoginForm{Email: email, Password: password})
				if err != nil {
					return failed(err, "")
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Welcome, %s (%s).", user.Name, user.Plan.Label())))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := prompter(cmd)
			var err error
			if name == "" {
				if name, err = p.Ask(ctx, "Name", ""); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = p.Ask(ctx, "Email", ""); err != nil {
					return err
				}
			}
			password, err := readSecret(ctx, cmd, p, "Password")
			if err != nil {
				return err
			}
			confirm, err := readSecret(ctx, cmd, p, "Confirm password")
			if err != nil {
				return err
			}

			return withApp(ctx, pages.RouteRegister, func(a *app, _ *model.User) error {
				auth := pages.NewAuth(a.deps())
				if _, err := auth.Register(ctx, validate.RegisterForm{
					Name:            name,
					Email:           email,
					Password:        password,
					PasswordConfirm: confirm,
				}); err != nil {
					return failed(err, pages.MsgRegister)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(auth.Notice()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withApp(ctx, pages.RouteLanding, func(a *app, _ *model.User) error {
				if err := pages.NewAuth(a.deps()).Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out."))
				return nil
			})
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), pages.RouteDashboard, func(a *app, user *model.User) error {
				printUser(cmd.OutOrStdout(), user)
				return nil
			})
		},
	}
}

func printUser(w io.Writer, user *model.User) {
	fmt.Fprintf(w, "%s %s\n", cli.SubtleStyle.Render("Name "), cli.BoldStyle.Render(user.Name))
	fmt.Fprintf(w, "%s %s\n", cli.SubtleStyle.Render("Email"), user.Email)
	fmt.Fprintf(w, "%s %s\n", cli.SubtleStyle.Render("Plan "), user.Plan.Label())
	fmt.Fprintf(w, "%s %d\n", cli.SubtleStyle.Render("ID   "), user.ID)
}
