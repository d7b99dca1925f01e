// Package ingest implements the row sources that feed the analysis core:
// CSV/TXT exports, free-text rows, OFX statements and Plaid accounts. All
// sources deliver sign-normalized rows and filter out entries with an
// empty item or a non-positive amount before they reach the core.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spendy-app/spendy/internal/model"
)

// Header aliases accepted in uploaded files, English and Korean.
var (
	categoryHeaders = []string{"category", "카테고리"}
	itemHeaders     = []string{"item", "항목"}
	amountHeaders   = []string{"total spent", "금액"}
)

// CSVReader parses comma-separated expense exports with a header row.
type CSVReader struct{}

// NewCSVReader creates a new CSV row source.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Parse reads all rows from r. Rows missing an item or with a non-positive
// amount are skipped; amounts are normalized with abs. A missing category
// column falls back to the Unknown label, matching the upload flow.
func (p *CSVReader) Parse(_ context.Context, r io.Reader) ([]model.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	categoryIdx := columnIndex(header, categoryHeaders)
	itemIdx := columnIndex(header, itemHeaders)
	amountIdx := columnIndex(header, amountHeaders)
	if itemIdx < 0 || amountIdx < 0 {
		return nil, fmt.Errorf("missing item or amount column in header %v", header)
	}

	var rows []model.RawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		item := field(record, itemIdx)
		amount := parseAmount(field(record, amountIdx))
		if item == "" || amount <= 0 {
			continue
		}

		categoryLabel := field(record, categoryIdx)
		if categoryLabel == "" {
			categoryLabel = model.CategoryUnknown.String()
		}

		rows = append(rows, model.RawRecord{
			Category: categoryLabel,
			Item:     item,
			Amount:   amount,
		})
	}

	return rows, nil
}

func columnIndex(header, names []string) int {
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		for _, name := range names {
			if normalized == name {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return math.Abs(amount)
}
