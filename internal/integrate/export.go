package integrate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/geoborder/borderlens/internal/model"
)

// OutputFilename is the integrated table's file name under <dataDir>/outputs.
const OutputFilename = "economic_border_integration.csv"

// OutputPath returns the CSV output path for a data directory.
func OutputPath(dataDir string) string {
	return filepath.Join(dataDir, "outputs", OutputFilename)
}

// WriteCSV writes the integrated table to path with the given fixed column
// set, creating the parent directory and overwriting any existing file.
// Cells for ratio columns a row does not carry are left empty.
func WriteCSV(rows []model.IntegratedRow, columns []string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "integrate: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "integrate: create output file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "integrate: write header")
	}

	for _, row := range rows {
		if err := w.Write(buildRecord(row, columns)); err != nil {
			return eris.Wrap(err, "integrate: write row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "integrate: flush output")
}

// WriteXLSX writes the same table as a single-sheet XLSX workbook.
func WriteXLSX(rows []model.IntegratedRow, columns []string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "integrate: create output dir")
	}

	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("integration")
	if err != nil {
		return eris.Wrap(err, "integrate: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, row := range rows {
		out := sheet.AddRow()
		for _, cell := range buildRecord(row, columns) {
			out.AddCell().SetString(cell)
		}
	}

	return eris.Wrap(wb.Save(path), "integrate: save xlsx")
}

// buildRecord maps one integrated row onto the fixed column set.
func buildRecord(row model.IntegratedRow, columns []string) []string {
	record := make([]string, 0, len(columns))
	for _, col := range columns {
		switch col {
		case "border_pair":
			record = append(record, row.BorderPair)
		case "country_1":
			record = append(record, row.Country1)
		case "country_2":
			record = append(record, row.Country2)
		case "border_length_km":
			record = append(record, formatFloat(row.BorderLengthKM))
		default:
			if v, ok := row.Ratios[col]; ok {
				record = append(record, formatFloat(v))
			} else {
				record = append(record, "")
			}
		}
	}
	return record
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
