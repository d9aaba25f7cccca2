package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, update, activate and deactivate the categories used to classify movements.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(toggleCategoryCmd())

	return cmd
}

// withCategories runs fn with a loaded categories controller.
func withCategories(ctx context.Context, fn func(*app, *pages.Categories) error) error {
	return withApp(ctx, pages.RouteCategories, func(a *app, _ *model.User) error {
		c := pages.NewCategories(a.deps())
		defer c.Close()
		if err := c.Load(ctx); err != nil {
			return failed(err, pages.MsgLoadCategories)
		}
		return fn(a, c)
	})
}

func parseCategoryKind(s string) (model.CategoryKind, error) {
	k := model.CategoryKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("kind must be income, expense or both, got %q", s)
	}
	return k, nil
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCategories(cmd.Context(), func(_ *app, c *pages.Categories) error {
				out := cmd.OutOrStdout()
				categories := c.Categories()
				if len(categories) == 0 {
					fmt.Fprintln(out, cli.InfoStyle.Render("No categories found. Use 'ahorra categories add' to create one."))
					return nil
				}

				counts := c.Counts()
				fmt.Fprintln(out, cli.SubtitleStyle.Render(fmt.Sprintf("%d total · %d active · %d income · %d expense · %d both",
					counts.Total, counts.Active, counts.Income, counts.Expense, counts.Both)))

				w := newTable(out)
				fmt.Fprintln(w, cli.TableHeaderStyle.Render("ID")+"\t"+
					cli.TableHeaderStyle.Render("NAME")+"\t"+
					cli.TableHeaderStyle.Render("KIND")+"\t"+
					cli.TableHeaderStyle.Render("STATUS")+"\t"+
					cli.TableHeaderStyle.Render("DESCRIPTION"))
				for _, cat := range categories {
					status := cli.SuccessStyle.Render("active")
					if !cat.Active {
						status = cli.SubtleStyle.Render("inactive")
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", cat.ID, cat.Name, strings.ToLower(string(cat.Kind)), status, cat.DescriptionText())
				}
				return w.Flush()
			})
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var description, kind string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseCategoryKind(kind)
			if err != nil {
				return err
			}
			return withCategories(cmd.Context(), func(_ *app, c *pages.Categories) error {
				if err := c.Create(cmd.Context(), validate.CategoryForm{Name: args[0], Description: description, Kind: k}); err != nil {
					return failed(err, pages.MsgSaveCategory)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(c.Notice()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&kind, "kind", "expense", "income, expense or both")
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var name, description, kind string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category's name, description or kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCategories(cmd.Context(), func(_ *app, c *pages.Categories) error {
				current, ok := findCategory(c.Categories(), id)
				if !ok {
					return fmt.Errorf("category %d not found", id)
				}

				form := validate.CategoryForm{Name: current.Name, Description: current.DescriptionText(), Kind: current.Kind}
				if cmd.Flags().Changed("name") {
					form.Name = name
				}
				if cmd.Flags().Changed("description") {
					form.Description = description
				}
				if cmd.Flags().Changed("kind") {
					if form.Kind, err = parseCategoryKind(kind); err != nil {
						return err
					}
				}

				if err := c.Update(cmd.Context(), id, form); err != nil {
					return failed(err, pages.MsgSaveCategory)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(c.Notice()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&kind, "kind", "", "income, expense or both")
	return cmd
}

func toggleCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCategories(cmd.Context(), func(_ *app, c *pages.Categories) error {
				if err := c.Toggle(cmd.Context(), id); err != nil {
					return failed(err, pages.MsgToggleCategory)
				}
				cat, _ := findCategory(c.Categories(), id)
				state := "deactivated"
				if cat.Active {
					state = "activated"
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Category %q %s.", cat.Name, state)))
				return nil
			})
		},
	}
}

func findCategory(categories []model.Category, id int64) (model.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}
