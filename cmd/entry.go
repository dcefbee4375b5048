package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/entry"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	entryAmount       string
	entryCategoryID   int64
	entryDate         string
	entryDescription  string
	entryReceipt      string
	entryClearReceipt bool
)

var (
	entryCmd = &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries"},
		Short:   "Record, list, edit and delete ledger entries",
	}

	entryAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Record an entry",
		Args:  cobra.NoArgs,
		RunE:  runEntryAdd,
	}

	entryListCmd = &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE:  runEntryList,
	}

	entryDeleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runEntryDelete,
	}

	entryUpdateCmd = &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runEntryUpdate,
	}
)

func init() {
	entryAddCmd.Flags().StringVarP(&entryAmount, "amount", "a", "", "positive amount")
	entryAddCmd.Flags().Int64VarP(&entryCategoryID, "category-id", "c", 0, "category id")
	entryAddCmd.Flags().StringVarP(&entryDate, "date", "d", "", "date as YYYY-MM-DD (default today)")
	entryAddCmd.Flags().StringVar(&entryDescription, "description", "", "free text description")
	entryAddCmd.Flags().StringVar(&entryReceipt, "receipt", "", "path to a receipt image")
	_ = entryAddCmd.MarkFlagRequired("amount")
	_ = entryAddCmd.MarkFlagRequired("category-id")

	entryUpdateCmd.Flags().StringVarP(&entryAmount, "amount", "a", "", "new amount")
	entryUpdateCmd.Flags().Int64VarP(&entryCategoryID, "category-id", "c", 0, "new category id")
	entryUpdateCmd.Flags().StringVarP(&entryDate, "date", "d", "", "new date as YYYY-MM-DD")
	entryUpdateCmd.Flags().StringVar(&entryDescription, "description", "", "new description")
	entryUpdateCmd.Flags().StringVar(&entryReceipt, "receipt", "", "new receipt path")
	entryUpdateCmd.Flags().BoolVar(&entryClearReceipt, "clear-receipt", false, "remove the receipt path")
	entryUpdateCmd.MarkFlagsMutuallyExclusive("receipt", "clear-receipt")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryDeleteCmd)
	entryCmd.AddCommand(entryUpdateCmd)
}

func runEntryAdd(cmd *cobra.Command, _ []string) error {
	amount, err := parseAmount(entryAmount)
	if err != nil {
		return err
	}

	date := entryDate
	if date == "" {
		date = entry.FormatDate(time.Now())
	}

	dto := entry.AddEntryDTO{
		Amount:      amount,
		CategoryID:  entryCategoryID,
		Date:        date,
		Description: entryDescription,
	}
	if entryReceipt != "" {
		dto.ReceiptPath = &entryReceipt
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
		if err := requireCategory(s, dto.CategoryID); err != nil {
			return err
		}
		e, err := s.Entries.Add(dto)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added entry %d\n", e.ID)
		return nil
	})
}

func runEntryList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
		views, err := s.Entries.ListAll()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTYPE\tAMOUNT\tDESCRIPTION\tRECEIPT")
		for _, v := range views {
			receipt := ""
			if v.HasReceipt() {
				receipt = *v.ReceiptPath
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				v.ID, v.Date, v.CategoryName, v.CategoryType, v.Amount.StringFixed(2), v.Description, receipt)
		}
		return w.Flush()
	})
}

func runEntryDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
		if err := s.Entries.DeleteByID(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted entry %d\n", id)
		return nil
	})
}

func runEntryUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var amount decimal.Decimal
	if flags.Changed("amount") {
		if amount, err = parseAmount(entryAmount); err != nil {
			return err
		}
	}
	if flags.Changed("date") {
		if err := entry.ValidateDate(entryDate); err != nil {
			return err
		}
	}

	return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
		existing, err := s.Entries.Get(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return internal.NewNotFoundError(fmt.Sprintf("entry %d does not exist", id), internal.ErrCodeEntryNotFound)
		}

		changed := 0
		if flags.Changed("date") {
			if err := s.Entries.UpdateDate(id, entryDate); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("category-id") {
			if err := requireCategory(s, entryCategoryID); err != nil {
				return err
			}
			if err := s.Entries.UpdateCategory(id, entryCategoryID); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("amount") {
			if err := s.Entries.UpdateAmount(id, amount); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("description") {
			if err := s.Entries.UpdateDescription(id, entryDescription); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("receipt") {
			if err := s.Entries.UpdateReceiptPath(id, &entryReceipt); err != nil {
				return err
			}
			changed++
		}
		if entryClearReceipt {
			if err := s.Entries.UpdateReceiptPath(id, nil); err != nil {
				return err
			}
			changed++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "updated %d field(s) of entry %d\n", changed, id)
		return nil
	})
}

func requireCategory(s *store.Store, id int64) error {
	_, ok, err := s.Categories.NameOf(id)
	if err != nil {
		return err
	}
	if !ok {
		return internal.NewNotFoundError(fmt.Sprintf("category %d does not exist", id), internal.ErrCodeCategoryMissing)
	}
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, internal.NewValidationFieldError("amount", fmt.Sprintf("amount %q is not a number", s), internal.ErrCodeInvalidAmount)
	}
	if err := entry.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationFieldError("id", fmt.Sprintf("id %q must be a positive integer", s), internal.ErrCodeValidationFailed)
	}
	return id, nil
}
