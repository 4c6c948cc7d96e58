package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dsa-reconciler/internal/schema"
)

func TestFileTableRepository_LoadDataset_CSV(t *testing.T) {
	tests := []struct {
		name        string
		csvData     [][]string
		wantHeaders []string
		wantRows    [][]string
	}{
		{
			name: "deposit export",
			csvData: [][]string{
				{"Transaction ID", "customer_mobile", "Transaction Type", "Amount"},
				{"TXN001", "2201234567", "CR", "500.00"},
				{"TXN002", "2207654321", "DR", "120.00"},
			},
			wantHeaders: []string{"Transaction ID", "customer_mobile", "Transaction Type", "Amount"},
			wantRows: [][]string{
				{"TXN001", "2201234567", "CR", "500.00"},
				{"TXN002", "2207654321", "DR", "120.00"},
			},
		},
		{
			name: "header only",
			csvData: [][]string{
				{"Mobile", "Full Name"},
			},
			wantHeaders: []string{"Mobile", "Full Name"},
			wantRows:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := createTempCSV(t, tt.csvData)
			require.NoError(t, err)

			repo := NewFileTableRepository()
			ctx := context.Background()

			got, err := repo.LoadDataset(ctx, schema.DatasetDeposit, tmpFile)
			require.NoError(t, err)
			assert.Equal(t, string(schema.DatasetDeposit), got.Name)
			assert.Equal(t, tt.wantHeaders, got.Headers)
			assert.Equal(t, len(tt.wantRows), got.Len())
			for i, wantRow := range tt.wantRows {
				assert.Equal(t, wantRow, got.Rows[i])
			}
		})
	}
}

func TestFileTableRepository_LoadDataset_RaggedRows(t *testing.T) {
	// Short rows are a fact of life in these exports; the reader must keep
	// them instead of failing the whole file.
	tmpFile := filepath.Join(t.TempDir(), "ragged.csv")
	content := "Mobile,Full Name,Referrer Mobile\n2201234567,Amie Jallow,2207654321\n2209876543\n"
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))

	repo := NewFileTableRepository()

	got, err := repo.LoadDataset(context.Background(), schema.DatasetOnboarding, tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, "2209876543", got.Value(got.Rows[1], "Mobile"))
	assert.Equal(t, "", got.Value(got.Rows[1], "Full Name"))
}

func TestFileTableRepository_LoadDataset_StripsBOM(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bom.csv")
	content := "\uFEFFMobile,Full Name\n2201234567,Amie Jallow\n"
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))

	repo := NewFileTableRepository()

	got, err := repo.LoadDataset(context.Background(), schema.DatasetOnboarding, tmpFile)
	require.NoError(t, err)
	assert.True(t, got.Has("Mobile"))
	assert.Equal(t, "2201234567", got.Value(got.Rows[0], "Mobile"))
}

func TestFileTableRepository_LoadDataset_Workbook(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "onboarding.xlsx")
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{"Mobile", "Full Name", "Customer Referrer Mobile"}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{"2201234567", "Amie Jallow", "2207654321"}))
	require.NoError(t, book.SetSheetRow(sheet, "A3", &[]any{"2202223334", "Lamin Ceesay", ""}))
	require.NoError(t, book.SaveAs(tmpFile))
	require.NoError(t, book.Close())

	repo := NewFileTableRepository()

	got, err := repo.LoadDataset(context.Background(), schema.DatasetOnboarding, tmpFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mobile", "Full Name", "Customer Referrer Mobile"}, got.Headers)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, "Lamin Ceesay", got.Value(got.Rows[1], "Full Name"))
}

func TestFileTableRepository_LoadDataset_FileErrors(t *testing.T) {
	repo := NewFileTableRepository()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.LoadDataset(ctx, schema.DatasetDeposit, "nonexistent_file.csv")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("empty file has no header", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(tmpFile, nil, 0o644))

		_, err := repo.LoadDataset(ctx, schema.DatasetDeposit, tmpFile)
		if err == nil {
			t.Error("Expected error for empty file, got nil")
		}
	})

	t.Run("workbook is not a workbook", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "fake.xlsx")
		require.NoError(t, os.WriteFile(tmpFile, []byte("not a zip"), 0o644))

		_, err := repo.LoadDataset(ctx, schema.DatasetDeposit, tmpFile)
		if err == nil {
			t.Error("Expected error for corrupt workbook, got nil")
		}
	})
}

// Helper functions

func createTempCSV(t *testing.T, data [][]string) (string, error) {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test_*.csv")
	if err != nil {
		return "", err
	}

	writer := csv.NewWriter(tmpFile)
	for _, record := range data {
		if err := writer.Write(record); err != nil {
			tmpFile.Close()
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		tmpFile.Close()
		return "", err
	}

	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	return tmpFile.Name(), nil
}

// Benchmark tests

func BenchmarkLoadDatasetCSV(b *testing.B) {
	data := [][]string{{"Transaction ID", "customer_mobile", "Transaction Type", "Amount"}}
	for i := 0; i < 1000; i++ {
		data = append(data, []string{"TXN001", "2201234567", "CR", "500.00"})
	}

	tmpFile, err := os.CreateTemp(b.TempDir(), "bench_*.csv")
	if err != nil {
		b.Fatalf("Failed to create temp file: %v", err)
	}
	writer := csv.NewWriter(tmpFile)
	for _, record := range data {
		if err := writer.Write(record); err != nil {
			b.Fatalf("Failed to write temp file: %v", err)
		}
	}
	writer.Flush()
	if err := tmpFile.Close(); err != nil {
		b.Fatalf("Failed to close temp file: %v", err)
	}

	repo := NewFileTableRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := repo.LoadDataset(ctx, schema.DatasetDeposit, tmpFile.Name())
		if err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}

func BenchmarkLoadDatasetWorkbook(b *testing.B) {
	tmpFile := filepath.Join(b.TempDir(), "bench.xlsx")
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	if err := book.SetSheetRow(sheet, "A1", &[]any{"Transaction ID", "customer_mobile", "Transaction Type", "Amount"}); err != nil {
		b.Fatalf("Failed to write header: %v", err)
	}
	row := []any{"TXN001", "2201234567", "CR", "500.00"}
	for i := 0; i < 1000; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			b.Fatalf("Failed to name cell: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			b.Fatalf("Failed to write temp workbook: %v", err)
		}
	}
	if err := book.SaveAs(tmpFile); err != nil {
		b.Fatalf("Failed to save temp workbook: %v", err)
	}
	if err := book.Close(); err != nil {
		b.Fatalf("Failed to close temp workbook: %v", err)
	}

	repo := NewFileTableRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := repo.LoadDataset(ctx, schema.DatasetDeposit, tmpFile)
		if err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
