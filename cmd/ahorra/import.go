package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/ofx"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import movements from bank files",
	}
	cmd.AddCommand(importOFXCmd())
	return cmd
}

// importResult counts what an import did.
type importResult struct {
	created int
	failed  int
	total   int
}

func (r *importResult) String() string {
	return fmt.Sprintf("Created %d of %d movements, %d failed.", r.created, r.total, r.failed)
}

func importOFXCmd() *cobra.Command {
	var incomeCategory, expenseCategory int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ofx FILE",
		Short: "Import an OFX or QFX statement",
		Long: `Import an OFX or QFX statement. Debits become expenses and credits become
income, filed under the given categories. Lines that fail are reported and
the rest are still created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			drafts, err := ofx.NewParser(slog.Default()).Parse(ctx, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No movements found in the file."))
				return nil
			}

			return withApp(ctx, pages.RouteTransactions, func(a *app, user *model.User) error {
				if dryRun {
					printDrafts(out, a.cfg.Currency, drafts)
					return nil
				}
				if incomeCategory == 0 || expenseCategory == 0 {
					return fmt.Errorf("--income-category and --expense-category are required")
				}

				categories, err := a.client.ListCategories(ctx)
				if err != nil {
					return failed(err, pages.MsgLoadCategories)
				}

				result := &importResult{total: len(drafts)}
				handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), result.String)
				ctx, stop := handler.HandleInterrupts(ctx)
				defer stop()

				bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(drafts), "Importing")
				for _, d := range drafts {
					if ctx.Err() != nil {
						break
					}
					err := createDraft(ctx, a.client, user.ID, categories, d.Form(incomeCategory, expenseCategory))
					switch {
					case err == nil:
						result.created++
					case errors.Is(err, context.Canceled):
						// Interrupted; the handler prints the summary.
					default:
						result.failed++
						slog.Warn("Failed to import movement", "fitid", d.FITID, "error", err)
						fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(fmt.Sprintf("%s %s: %s",
							d.Date, d.Description, common.Describe(err, pages.MsgSaveTransaction))))
					}
					_ = bar.Add(1)
				}

				if handler.WasInterrupted() {
					return nil
				}
				fmt.Fprintln(out, cli.FormatSuccess(result.String()))
				if result.failed > 0 {
					return fmt.Errorf("%d movements could not be imported", result.failed)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&incomeCategory, "income-category", 0, "category id for credits")
	cmd.Flags().Int64Var(&expenseCategory, "expense-category", 0, "category id for debits")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the movements without creating them")
	cmd.MarkFlagsRequiredTogether("income-category", "expense-category")
	return cmd
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, req api.CreateTransactionRequest) (*model.Transaction, error)
}

func createDraft(ctx context.Context, c transactionCreator, userID int64, categories []model.Category, form validate.TransactionForm) error {
	in, err := form.Validate(aggregate.CategoriesFor(categories, form.Kind))
	if err != nil {
		return err
	}
	_, err = c.CreateTransaction(ctx, api.CreateTransactionRequest{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	return err
}

func printDrafts(w io.Writer, currency string, drafts []ofx.Draft) {
	tw := newTable(w)
	fmt.Fprintln(tw, cli.TableHeaderStyle.Render("DATE")+"\t"+cli.TableHeaderStyle.Render("KIND")+"\t"+
		cli.TableHeaderStyle.Render("AMOUNT")+"\t"+cli.TableHeaderStyle.Render("DESCRIPTION"))
	for _, d := range drafts {
		amount := d.Amount
		if d.Kind == model.KindExpense {
			amount = amount.Neg()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Date, d.Kind, cli.FormatMoney(currency, amount), d.Description)
	}
	_ = tw.Flush()
}
