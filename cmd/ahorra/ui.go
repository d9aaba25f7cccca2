package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/tui"
	"github.com/dmatrios/ahorrape-front/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [path]",
		Short: "Open the interactive client",
		Long: `Open the interactive client at path (default /dashboard). Protected screens
send you to the login screen when there is no valid session. Logs are written
to ahorra.log next to the session database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := ""
			if len(args) == 1 {
				start = args[0]
			}

			return withApp(ctx, pages.RouteLanding, func(a *app, _ *model.User) error {
				logFile, err := openLogFile(a.cfg.SessionPath)
				if err != nil {
					return err
				}
				defer func() { _ = logFile.Close() }()
				if err := common.SetupLogger(logFile, a.cfg.LogLevel, a.cfg.LogFormat); err != nil {
					return fmt.Errorf("failed to setup logging: %w", err)
				}

				return tui.Run(ctx, tui.Options{
					Theme:    themes.GetTheme(a.cfg.Theme),
					Deps:     a.deps(),
					Chart:    a.chart(),
					Currency: a.cfg.Currency,
					Start:    start,
				})
			})
		},
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openLogFile keeps the log out of the alternate screen.
func openLogFile(sessionPath string) (io.WriteCloser, error) {
	if sessionPath == ":memory:" {
		return nopCloser{io.Discard}, nil
	}
	path := filepath.Join(filepath.Dir(sessionPath), "ahorra.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
