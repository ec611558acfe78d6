// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Transactions"

// WriteXLSX writes rows to a single-sheet workbook with the same fixed
// column order WriteCSV uses, so the workbook matches the csv/json/jsonl
// outputs column for column.
func WriteXLSX(w io.Writer, rows []Row) error {
	extras := extraKeys(rows)
	header := append(append([]string(nil), csvColumns...), extras...)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("output: rename sheet: %w", err)
	}

	for col, name := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("output: write header: %w", err)
		}
	}

	for i, r := range rows {
		excelRow := i + 2
		values := []any{r.Date, r.Particulars, r.CheckNo, numOrNil(r.Debit), numOrNil(r.Credit), numOrNil(r.Balance)}
		for _, k := range extras {
			values = append(values, r.Extra[k])
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, excelRow)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("output: write row %d: %w", i, err)
			}
		}
	}

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("output: set active sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	return f.Write(w)
}

func numOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
