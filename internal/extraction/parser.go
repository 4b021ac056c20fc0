package extraction

import (
	"context"
	"strconv"
	"strings"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// RecordColumns is the number of rendered columns a row needs to become a Record.
const RecordColumns = 8

// TryParseRecord builds a Record from the first eight columns of a row.
//
// Rules:
//   - fewer than eight columns: ErrInsufficientColumns, the row is never padded.
//   - first column not a serial number (digits, commas ignored): ErrNotDataRow.
//     This rejects header and separator rows that render eight cells.
//   - Buyer, Seller, Quantity, Rate and Amount have every comma removed.
//     No other numeric validation is done.
func TryParseRecord(columns []string) (models.Record, error) {
	if len(columns) < RecordColumns {
		return models.Record{}, ErrInsufficientColumns
	}
	if !isSerialNumber(columns[0]) {
		return models.Record{}, ErrNotDataRow
	}

	return models.Record{
		SN:          columns[0],
		ContractNo:  columns[1],
		StockSymbol: columns[2],
		Buyer:       stripCommas(columns[3]),
		Seller:      stripCommas(columns[4]),
		Quantity:    stripCommas(columns[5]),
		Rate:        stripCommas(columns[6]),
		Amount:      stripCommas(columns[7]),
	}, nil
}

// ExtractPage reads the current page through a and returns its valid
// records in row order, plus the number of rows rejected by TryParseRecord.
// Only a failure to read the rows is returned as an error.
func ExtractPage(ctx context.Context, a Adapter) ([]models.Record, int, error) {
	rows, err := a.Rows(ctx)
	if err != nil {
		return nil, 0, err
	}

	records := make([]models.Record, 0, len(rows))
	dropped := 0
	for _, cols := range rows {
		rec, err := TryParseRecord(cols)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}

// ParseTotalPages parses a pagination label such as "45" or "1,204".
// It reports false for empty, non-numeric or negative labels. A literal "0"
// is a valid count: the view has no pages and nothing is extracted.
func ParseTotalPages(label string) (int, bool) {
	label = stripCommas(strings.TrimSpace(label))
	n, err := strconv.Atoi(label)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func isSerialNumber(s string) bool {
	s = stripCommas(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
