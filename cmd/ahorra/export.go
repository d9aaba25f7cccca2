package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/config"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports",
	}
	cmd.AddCommand(exportSheetsCmd())
	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write the monthly report to Google Sheets",
		Long: `Write the monthly report to Google Sheets.

Configure either a service account (sheets.service_account_path) or an OAuth2
client (sheets.client_id, sheets.client_secret, sheets.refresh_token). Without
sheets.spreadsheet_id a new spreadsheet is created and its id is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			at, err := monthFlags(month, year, time.Now())
			if err != nil {
				return err
			}
			sheetsCfg, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
			}

			return withApp(ctx, pages.RouteDashboard, func(a *app, user *model.User) error {
				summary, err := a.client.MonthlySummary(ctx, user.ID, at.Year(), at.Month())
				if err != nil {
					return failed(err, pages.MsgLoadSummary)
				}
				report := sheets.NewReport(*user, at.Year(), at.Month(), *summary, a.cfg.ChartGroupBy == pages.GroupByID)

				writer, err := sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
				if err != nil {
					return err
				}
				id, err := writer.Write(ctx, report)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatSuccess("Exported "+report.Period()))
				fmt.Fprintf(out, "%s %s\n", cli.SubtleStyle.Render("Spreadsheet"), id)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "month number (default: current)")
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	return cmd
}
