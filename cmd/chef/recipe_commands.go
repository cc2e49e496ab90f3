package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/hmchef/hmchef/internal/model"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current recipe collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, func(ctx context.Context, a *app) error {
				recipes := a.engine.Store.List()
				if len(recipes) == 0 {
					fmt.Println("No recipes added yet.")
					return nil
				}
				renderRecipes(recipes)
				return nil
			})
		},
	}
}

func newAddCommand() *cobra.Command {
	var recipe model.Recipe

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe to the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.engine.Store.Add(ctx, recipe); err != nil {
					return err
				}
				fmt.Printf("Added %q\n", recipe.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&recipe.Name, "name", "", "recipe name")
	cmd.Flags().StringVar(&recipe.Description, "description", "", "preparation instructions")
	cmd.Flags().StringVar(&recipe.Category, "category", "", "dish category")
	cmd.Flags().StringVar(&recipe.ImageURI, "image", "", "image file path or URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a recipe from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, func(ctx context.Context, a *app) error {
				if !a.engine.Store.Exists(args[0]) {
					return fmt.Errorf("no recipe with id %s", args[0])
				}
				if err := a.engine.Store.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Println("Deleted", args[0])
				return nil
			})
		},
	}
}

func renderRecipes(recipes []model.Recipe) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Image"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Name", WidthMax: 40},
		{Name: "Image", WidthMax: 48, WidthMaxEnforcer: text.Trim},
	})
	for _, r := range recipes {
		t.AppendRow(table.Row{r.ID, r.Name, r.Category, r.ImageURI})
	}
	t.Render()
}
