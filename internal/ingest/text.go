package ingest

import (
	"strings"

	"github.com/spendy-app/spendy/internal/model"
)

// ParseText parses free-text rows, one expense per line, with the amount
// as the last whitespace-separated token and everything before it as the
// item. Lines that yield an empty item or a non-positive amount are
// dropped. Free-text rows carry no category hint.
func ParseText(text string) []model.RawRecord {
	var rows []model.RawRecord

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		amount := parseAmount(parts[len(parts)-1])
		item := strings.Join(parts[:len(parts)-1], " ")
		if item == "" || amount <= 0 {
			continue
		}

		rows = append(rows, model.RawRecord{
			Category: model.CategoryUnknown.String(),
			Item:     item,
			Amount:   amount,
		})
	}

	return rows
}
