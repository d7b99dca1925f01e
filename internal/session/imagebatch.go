package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

// Image is one uploaded document image awaiting classification.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// BatchResult reports the outcome of an image batch. Valid is false when
// any image in the batch was rejected as a non-financial document, in
// which case nothing was merged into the working set.
type BatchResult struct {
	Valid bool
	Count int
}

// IngestImages runs the sequential image pipeline: each image is sent to
// the analyzer one at a time, and the first image flagged as non-financial
// aborts the whole batch. The batch is all-or-nothing from the working
// set's perspective: rows extracted from earlier images are discarded
// along with the rest.
//
// Rows extracted from images carry the analyzer's own category; it is
// parsed against the closed enumeration rather than re-run through the
// keyword resolver.
func (s *Session) IngestImages(ctx context.Context, analyzer service.ImageAnalyzer, images []Image) (BatchResult, error) {
	var pending []model.Record

	for i, img := range images {
		analysis, err := analyzer.AnalyzeTransactionImage(ctx, img.Data, img.MIMEType)
		if err != nil {
			return BatchResult{}, fmt.Errorf("failed to analyze image %q: %w", img.Name, err)
		}

		if !analysis.IsFinancial {
			slog.Warn("image rejected as non-financial, discarding batch",
				"image", img.Name,
				"processed", i)
			return BatchResult{Valid: false}, nil
		}

		for _, t := range analysis.Transactions {
			pending = append(pending, model.Record{
				RawCategory: t.Category,
				Item:        t.Item,
				Amount:      math.Abs(t.Amount),
				Resolved:    model.ParseCategory(t.Category),
			})
		}
	}

	s.records = append(s.records, pending...)
	s.recompute()

	slog.Debug("image batch merged",
		"images", len(images),
		"rows", len(pending))
	return BatchResult{Valid: true, Count: len(pending)}, nil
}
