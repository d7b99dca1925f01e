// Package category assigns expense rows to the closed set of spending
// categories using ordered keyword tables.
package category

import (
	"strings"

	"github.com/spendy-app/spendy/internal/model"
)

// Resolve maps an item description plus an optional category hint onto one
// canonical category. It never fails: anything unmatched falls back to
// model.CategoryUnknown.
//
// Matching is case-insensitive substring containment, not tokenized, so
// multi-word vendor names and partial strings from noisy OCR input still
// hit. The fine-grained item table is scanned first, then the coarse
// category-name table, each in fixed order with first match winning. If
// neither table matches and rawCategory already names a valid category, it
// passes through verbatim.
func Resolve(item, rawCategory string) model.Category {
	if item == "" {
		return model.CategoryUnknown
	}

	normalized := strings.ToLower(item)

	for _, m := range itemMappings {
		if strings.Contains(normalized, m.keyword) {
			return m.category
		}
	}

	for _, m := range categoryMappings {
		if strings.Contains(normalized, m.keyword) {
			return m.category
		}
	}

	if c := model.Category(rawCategory); c.Valid() {
		return c
	}

	return model.CategoryUnknown
}

// ResolveAll classifies a batch of raw rows in order.
func ResolveAll(rows []model.RawRecord) []model.Record {
	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.Record{
			RawCategory: row.Category,
			Item:        row.Item,
			Amount:      row.Amount,
			Resolved:    Resolve(row.Item, row.Category),
		})
	}
	return records
}
