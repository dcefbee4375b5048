package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/finance-ledger/internal/category"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/spf13/cobra"
)

var categoryType string

var (
	categoryCmd = &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage income and expense categories",
	}

	categoryListCmd = &cobra.Command{
		Use:   "list",
		Short: "List categories by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
				categories, err := s.Categories.ListAll()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tTYPE")
				for _, c := range categories {
					fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Type)
				}
				return w.Flush()
			})
		},
	}

	categoryAddCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
				c, err := s.Categories.Add(args[0], category.Type(categoryType))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added category %d %s (%s)\n", c.ID, c.Name, c.Type)
				return nil
			})
		},
	}

	categoryDeleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category that no entry uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
				if err := s.Categories.Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted category %d\n", id)
				return nil
			})
		},
	}
)

func init() {
	categoryAddCmd.Flags().StringVarP(&categoryType, "type", "t", string(category.TypeExpense), "category type: income or expense")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}
