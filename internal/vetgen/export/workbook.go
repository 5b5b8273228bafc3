package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// ErrNoTables is returned when a workbook would have no sheets.
var ErrNoTables = errors.New("no tables to write")

// defaultSheet is the sheet every new excelize file starts with.
const defaultSheet = "Sheet1"

// buildWorkbook creates an in-memory workbook with one sheet per table.
// The caller owns the returned file and must Close it.
func buildWorkbook(tables []Table) (*excelize.File, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	f := excelize.NewFile()
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet %s: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			f.Close()
			return nil, err
		}
		logger.L().Debugw("Sheet written", "sheet", t.Name, "rows", len(t.Rows))
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, t Table) error {
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", t.Name, err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name for row %d of %s: %w", i+2, t.Name, err)
		}
		r := row
		if err := f.SetSheetRow(t.Name, cell, &r); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+2, t.Name, err)
		}
	}
	return nil
}

// WriteWorkbook encodes the tables as an xlsx workbook onto w.
func WriteWorkbook(w io.Writer, tables []Table) error {
	f, err := buildWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	return nil
}

// WriteWorkbookFile writes the workbook to path, creating parent
// directories as needed.
func WriteWorkbookFile(path string, tables []Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := WriteWorkbook(out, tables); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	logger.L().Infow("Workbook written", "path", path, "sheets", len(tables))
	return nil
}
