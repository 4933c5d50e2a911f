package dataprocessing

import (
	"encoding/csv"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "salesdash/internal/errors"
	"salesdash/pkg/contracts/domain"
)

// transactionsSheet is the workbook sheet preferred when present; otherwise
// the first sheet is used.
const transactionsSheet = "Transactions"

// LoadTable parses an uploaded file into a raw table. The format is chosen
// by file extension: .xlsx is read as a workbook, .csv as delimited text.
// Any other extension is rejected before parsing starts.
func LoadTable(filename string, r io.Reader) (*domain.RawTable, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return loadWorkbook(filename, r)
	case ".csv":
		return loadDelimited(filename, r)
	default:
		return nil, apperrors.NewUnsupportedFileError(filename)
	}
}

// loadWorkbook reads an Excel workbook, preferring the Transactions sheet.
func loadWorkbook(filename string, r io.Reader) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open workbook", err).
			WithContext("filename", filename)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewLoadError("workbook contains no sheets", nil).
			WithContext("filename", filename)
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if name == transactionsSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read sheet rows", err).
			WithContext("sheet", sheet)
	}

	slog.Info("loaded workbook sheet",
		slog.String("filename", filename),
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)))

	return buildTable(filename, rows)
}

// loadDelimited reads a CSV file. Ragged rows are tolerated and padded to
// header width.
func loadDelimited(filename string, r io.Reader) (*domain.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewLoadError("failed to parse delimited text", err).
			WithContext("filename", filename)
	}

	slog.Info("loaded delimited file",
		slog.String("filename", filename),
		slog.Int("total_rows", len(rows)))

	return buildTable(filename, rows)
}

// buildTable converts header+data rows into a RawTable, padding every data
// row to header width so positional access never goes out of range.
func buildTable(filename string, rows [][]string) (*domain.RawTable, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, apperrors.NewLoadError("file contains no header row", nil).
			WithContext("filename", filename)
	}

	columns := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		columns[i] = strings.TrimSpace(name)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(columns))
		for i := range columns {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
		}
		data = append(data, cells)
	}

	return &domain.RawTable{Columns: columns, Rows: data}, nil
}
