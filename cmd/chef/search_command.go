package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	var addID string

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the recipe provider and optionally import a result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, func(ctx context.Context, a *app) error {
				term := strings.Join(args, " ")
				results, err := a.search.Search(ctx, term)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				if len(results) == 0 {
					fmt.Println("No recipes found. Please try a different search term.")
					return nil
				}

				if addID != "" {
					for _, r := range results {
						if r.ID != addID {
							continue
						}
						if a.engine.Store.AlreadyOwned(r) {
							return fmt.Errorf("%q is already in your collection", r.Name)
						}
						if err := a.engine.Store.Add(ctx, r); err != nil {
							return err
						}
						fmt.Printf("Imported %q\n", r.Name)
						return nil
					}
					return fmt.Errorf("no search result with id %s", addID)
				}

				t := table.NewWriter()
				t.SetOutputMirror(os.Stdout)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"ID", "Name", "Category", "Owned"})
				for _, r := range results {
					owned := ""
					if a.engine.Store.AlreadyOwned(r) {
						owned = "yes"
					}
					t.AppendRow(table.Row{r.ID, r.Name, r.Category, owned})
				}
				t.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&addID, "add", "", "import the result with this id instead of listing")
	return cmd
}
