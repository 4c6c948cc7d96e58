package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"dsa-reconciler/internal/schema"
	"dsa-reconciler/internal/tabular"
)

// FileTableRepository loads source datasets from operator-exported CSV and
// Excel files. It performs no cleaning beyond whitespace and BOM handling;
// column resolution and row filtering belong to the engine.
type FileTableRepository struct{}

// NewFileTableRepository creates a new repository instance.
func NewFileTableRepository() *FileTableRepository {
	return &FileTableRepository{}
}

// LoadDataset reads the file at path into a table named after the dataset.
// The format is picked by extension; anything that is not an Excel workbook
// is treated as CSV.
func (r *FileTableRepository) LoadDataset(ctx context.Context, ds schema.Dataset, path string) (*tabular.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.readWorkbook(ds, path)
	default:
		return r.readCSV(ds, path)
	}
}

func (r *FileTableRepository) readCSV(ds schema.Dataset, path string) (*tabular.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s data file %s: %w", ds, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Exports frequently ship ragged rows; short rows read back as blanks.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		rows = append(rows, record)
	}

	return tabular.New(string(ds), header, rows), nil
}

func (r *FileTableRepository) readWorkbook(ds schema.Dataset, path string) (*tabular.Table, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook %s: %w", ds, path, err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	cells, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s from %s: %w", sheet, path, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("workbook %s sheet %s is empty", path, sheet)
	}

	return tabular.New(string(ds), cells[0], cells[1:]), nil
}
