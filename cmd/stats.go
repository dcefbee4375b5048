package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/finance-ledger/internal/entry"
	"github.com/frahmantamala/finance-ledger/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show monthly expense totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(_ context.Context, _ *store.Manager, s *store.Store) error {
			totals, err := s.Entries.MonthlyStatistics()
			if err != nil {
				return err
			}
			if len(totals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no expenses recorded")
				return nil
			}
			return writeStatsGrid(cmd, totals)
		})
	},
}

// writeStatsGrid prints one row per year, newest first, with a column per
// month. Months without expenses are blank.
func writeStatsGrid(cmd *cobra.Command, totals []entry.MonthlyTotal) error {
	years := make([]int, 0)
	grid := make(map[int]map[int]decimal.Decimal)
	for _, t := range totals {
		if _, ok := grid[t.Year]; !ok {
			grid[t.Year] = make(map[int]decimal.Decimal)
			years = append(years, t.Year)
		}
		grid[t.Year][t.Month] = t.Total
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
	header := []string{"YEAR"}
	for m := time.January; m <= time.December; m++ {
		header = append(header, m.String()[:3])
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, y := range years {
		cells := []string{fmt.Sprint(y)}
		for m := 1; m <= 12; m++ {
			cell := ""
			if total, ok := grid[y][m]; ok {
				cell = total.StringFixed(2)
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	return w.Flush()
}
