package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx", "movements"},
		Short:   "Manage income and expense movements",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func withTransactions(ctx context.Context, fn func(*app, *pages.Transactions) error) error {
	return withApp(ctx, pages.RouteTransactions, func(a *app, _ *model.User) error {
		t := pages.NewTransactions(a.deps())
		defer t.Close()
		if err := t.Load(ctx); err != nil {
			return failed(err, pages.MsgLoadTransactions)
		}
		return fn(a, t)
	})
}

func listTransactionsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your movements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kf, err := aggregate.ParseKindFilter(kind)
			if err != nil {
				return err
			}
			return withTransactions(cmd.Context(), func(a *app, t *pages.Transactions) error {
				out := cmd.OutOrStdout()
				if t.MonthTotals().OverBudget() {
					fmt.Fprintln(out, cli.FormatWarning("This month your expenses are above your income."))
				}
				t.SetKindFilter(kf)
				printTransactions(out, a.cfg.Currency, t.Visible())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "all, income or expense")
	return cmd
}

type transactionFlags struct {
	kind        string
	amount      string
	date        string
	description string
	category    int64
}

func (f *transactionFlags) register(cmd *cobra.Command, withKind bool) {
	if withKind {
		cmd.Flags().StringVar(&f.kind, "kind", "expense", "income or expense")
	}
	cmd.Flags().Int64Var(&f.category, "category", 0, "category id")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount greater than 0")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.description, "description", "", "optional description")
}

func addTransactionCmd() *cobra.Command {
	var flags transactionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a movement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := model.ParseKind(flags.kind)
			if err != nil {
				return err
			}
			date := flags.date
			if date == "" {
				date = model.NewDate(time.Now()).String()
			}
			return withTransactions(cmd.Context(), func(_ *app, t *pages.Transactions) error {
				form := validate.TransactionForm{
					Kind:        kind,
					CategoryID:  flags.category,
					Amount:      flags.amount,
					Date:        date,
					Description: flags.description,
				}
				if err := t.Create(cmd.Context(), form); err != nil {
					return failed(err, pages.MsgSaveTransaction)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(t.Notice()))
				return nil
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var flags transactionFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a movement. Its kind cannot change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTransactions(cmd.Context(), func(_ *app, t *pages.Transactions) error {
				current, ok := t.Get(id)
				if !ok {
					return fmt.Errorf("movement %d not found", id)
				}
				form := validate.TransactionForm{
					Kind:        current.Kind,
					CategoryID:  current.CategoryID,
					Amount:      current.Amount.String(),
					Date:        current.Date.String(),
					Description: current.Description,
				}
				if cmd.Flags().Changed("category") {
					form.CategoryID = flags.category
				}
				if cmd.Flags().Changed("amount") {
					form.Amount = flags.amount
				}
				if cmd.Flags().Changed("date") {
					form.Date = flags.date
				}
				if cmd.Flags().Changed("description") {
					form.Description = flags.description
				}

				if err := t.Update(cmd.Context(), id, form); err != nil {
					return failed(err, pages.MsgSaveTransaction)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(t.Notice()))
				return nil
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withTransactions(ctx, func(a *app, t *pages.Transactions) error {
				t.AskDelete(id)
				pending, ok := t.PendingDelete()
				if !ok {
					return fmt.Errorf("movement %d not found", id)
				}

				if !yes {
					question := fmt.Sprintf("Delete %q (%s) from %s?", pending.Description,
						cli.FormatMoney(a.cfg.Currency, pending.Amount), pending.Date)
					confirmed, err := prompter(cmd).Confirm(ctx, question)
					if err != nil {
						return err
					}
					if !confirmed {
						t.CancelDelete()
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted."))
						return nil
					}
				}

				if err := t.ConfirmDelete(ctx); err != nil {
					return failed(err, pages.MsgDeleteTransaction)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(t.Notice()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
