package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/spf13/cobra"
)

// monthFlags resolves --month and --year, defaulting to the current month.
func monthFlags(month, year int, now time.Time) (time.Time, error) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.Local), nil
}

func summaryCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the monthly overview",
		Long:  `Display income, expenses and balance for a month, with expenses by category and the latest movements.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			at, err := monthFlags(month, year, time.Now())
			if err != nil {
				return err
			}
			return withApp(ctx, pages.RouteDashboard, func(a *app, _ *model.User) error {
				deps := a.deps()
				deps.Now = func() time.Time { return at }
				dash := pages.NewDashboard(deps, a.chart())
				defer dash.Close()

				if err := dash.Load(ctx); err != nil {
					return failed(err, pages.MsgLoadSummary)
				}
				printDashboard(cmd.OutOrStdout(), a.cfg.Currency, at, dash.View())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "month number (default: current)")
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	return cmd
}

func printDashboard(w io.Writer, currency string, at time.Time, v pages.DashboardView) {
	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("%s · %s", v.User.Name, at.Format("January 2006"))))

	balance := cli.SuccessStyle
	if v.Balance.IsNegative() {
		balance = cli.ErrorStyle
	}
	fmt.Fprintln(w, cli.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"Income   "+cli.SuccessStyle.Render(cli.FormatMoney(currency, v.Totals.Income)),
		"Expenses "+cli.ErrorStyle.Render(cli.FormatMoney(currency, v.Totals.Expense)),
		"Balance  "+balance.Render(cli.FormatMoney(currency, v.Balance)),
	)))

	if v.AlertVisible {
		fmt.Fprintln(w, cli.FormatWarning("Your expenses exceed your income this month."))
	}
	if v.UpgradeVisible {
		fmt.Fprintln(w, cli.FormatInfo("You are on "+v.User.Plan.Label()+". Run 'ahorra plans' to see the paid plans."))
	}

	fmt.Fprintln(w)
	if len(v.Bars) == 0 {
		fmt.Fprintln(w, cli.SubtleStyle.Render("No expenses recorded this month."))
	} else {
		fmt.Fprintln(w, cli.BoldStyle.Render(cli.ChartIcon+" Expenses by category"))
		printBars(w, currency, v.Segments, v.Bars)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.BoldStyle.Render("Recent movements"))
	if len(v.Recent) == 0 {
		fmt.Fprintln(w, cli.SubtleStyle.Render("Nothing recorded yet."))
		return
	}
	tw := newTable(w)
	for _, m := range v.Recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Date, m.Title, m.Category, cli.FormatSigned(currency, m.SignedAmount))
	}
	_ = tw.Flush()
}

// printBars draws each category bar next to its share of total expenses.
func printBars(w io.Writer, currency string, segments []aggregate.Segment, bars []pages.Bar) {
	const width = 24
	share := make(map[string]aggregate.Segment, len(segments))
	for _, s := range segments {
		share[s.Category] = s
	}
	tw := newTable(w)
	for _, b := range bars {
		filled := int(b.Percent/100*width + 0.5)
		seg := share[b.Category]
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color))
		fmt.Fprintf(tw, "%s %s\t%s%s\t%5.1f%%\t%s\n",
			color.Render("●"), b.Category,
			color.Render(strings.Repeat("█", filled)), strings.Repeat("░", width-filled),
			seg.Percent, cli.FormatMoney(currency, b.Total))
	}
	_ = tw.Flush()
}

func historyCmd() *cobra.Command {
	var kind, period, ref string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List movements filtered by kind and period",
		Long: `List movements filtered by kind (all, income, expense) and period.
The reference defaults to today for day, this month for month and this year for year;
formats are YYYY-MM-DD, YYYY-MM and YYYY.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			kf, err := aggregate.ParseKindFilter(kind)
			if err != nil {
				return err
			}
			pk, err := aggregate.ParsePeriodKind(period)
			if err != nil {
				return err
			}
			return withApp(ctx, pages.RouteHistory, func(a *app, _ *model.User) error {
				h := pages.NewHistory(a.deps())
				defer h.Close()
				if err := h.Load(ctx); err != nil {
					return failed(err, pages.MsgLoadTransactions)
				}
				h.SetKind(kf)
				h.SetPeriod(pk)
				if ref != "" {
					h.SetReference(ref)
				}

				out := cmd.OutOrStdout()
				c := h.Criteria()
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("History · %s · %s %s", strings.ToLower(string(c.Kind)), strings.ToLower(string(c.Period)), c.Reference)))
				printTransactions(out, a.cfg.Currency, h.Visible())
				fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d records", h.Count())))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "all, income or expense")
	cmd.Flags().StringVar(&period, "period", "month", "day, month or year")
	cmd.Flags().StringVar(&ref, "ref", "", "period reference (default: today)")
	return cmd
}

func printTransactions(w io.Writer, currency string, txns []model.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(w, cli.InfoStyle.Render("No movements to show."))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, cli.TableHeaderStyle.Render("ID")+"\t"+
		cli.TableHeaderStyle.Render("DATE")+"\t"+
		cli.TableHeaderStyle.Render("DESCRIPTION")+"\t"+
		cli.TableHeaderStyle.Render("CATEGORY")+"\t"+
		cli.TableHeaderStyle.Render("AMOUNT"))
	for _, t := range txns {
		signed := t.Amount
		if t.IsExpense() {
			signed = signed.Neg()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Description, t.CategoryName, cli.StyleAmount(currency, signed))
	}
	_ = tw.Flush()
}
