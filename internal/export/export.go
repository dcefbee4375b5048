package export

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/finance-ledger/internal"
	"github.com/frahmantamala/finance-ledger/internal/entry"
	"github.com/frahmantamala/finance-ledger/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	Extension = ".xlsx"
	SheetName = "Transactions"
)

var headers = []string{"Date", "Category", "Amount", "Description", "Receipt"}

type EntryLister interface {
	ListAll() ([]*entry.View, error)
}

type CategoryNamer interface {
	NameOf(id int64) (string, bool, error)
}

const unknownCategory = "Unknown"

// Write saves every ledger entry, newest first, as a spreadsheet at path and
// returns the path written. ".xlsx" is appended when path lacks it.
func Write(ctx context.Context, path string, entries EntryLister, categories CategoryNamer) (string, error) {
	log := logger.From(ctx)

	if !strings.EqualFold(filepath.Ext(path), Extension) {
		path += Extension
	}

	views, err := entries.ListAll()
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than add a second one.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", internal.NewInternalError("failed to prepare export sheet", err)
	}

	if err := setRow(f, 1, toAny(headers)); err != nil {
		return "", err
	}
	names := make(map[int64]string)
	for i, v := range views {
		name, ok := names[v.CategoryID]
		if !ok {
			resolved, found, err := categories.NameOf(v.CategoryID)
			if err != nil {
				return "", err
			}
			name = unknownCategory
			if found {
				name = resolved
			}
			names[v.CategoryID] = name
		}
		if err := setRow(f, i+2, row(v, name)); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		log.Error("failed to save export", "path", path, "error", err)
		return "", internal.NewInternalError("failed to save export", err)
	}

	log.Info("ledger exported", "path", path, "rows", len(views))
	return path, nil
}

func row(v *entry.View, categoryName string) []interface{} {
	receipt := "No"
	if v.HasReceipt() {
		receipt = "Yes"
	}
	return []interface{}{
		v.Date,
		categoryName,
		v.Amount.InexactFloat64(),
		v.Description,
		receipt,
	}
}

func setRow(f *excelize.File, rowNo int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return internal.NewInternalError("failed to address export row", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return internal.NewInternalError("failed to write export row", err)
	}
	return nil
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
