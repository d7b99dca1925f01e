package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/gemini"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
	"github.com/spendy-app/spendy/internal/session"
	"github.com/spendy-app/spendy/internal/testutil"
)

func TestSessionIngestImages(t *testing.T) {
	ctx := context.Background()

	images := []session.Image{
		{Name: "receipt1.jpg", MIMEType: "image/jpeg", Data: []byte("a")},
		{Name: "receipt2.jpg", MIMEType: "image/jpeg", Data: []byte("b")},
	}

	t.Run("merges rows from a valid batch", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		analyzer := &gemini.MockAnalyzer{
			AnalyzeFunc: func(_ context.Context, _ []byte, _ string) (service.ImageAnalysis, error) {
				return service.ImageAnalysis{
					IsFinancial: true,
					Transactions: []model.RawRecord{
						{Item: "스타벅스", Amount: 4500, Category: "식비"},
					},
				}, nil
			},
		}

		result, err := sess.IngestImages(ctx, analyzer, images)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, 2, sess.Len())
		assert.Equal(t, 2, analyzer.Calls)
	})

	t.Run("rejected image discards the whole batch", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		analyzer := &gemini.MockAnalyzer{
			AnalyzeFunc: func(_ context.Context, data []byte, _ string) (service.ImageAnalysis, error) {
				if string(data) == "b" {
					return service.ImageAnalysis{IsFinancial: false}, nil
				}
				return service.ImageAnalysis{
					IsFinancial: true,
					Transactions: []model.RawRecord{
						{Item: "택시", Amount: 12000, Category: "교통비"},
					},
				}, nil
			},
		}

		result, err := sess.IngestImages(ctx, analyzer, images)
		require.NoError(t, err)
		assert.False(t, result.Valid)

		// Rows extracted from the first image never reach the working set.
		assert.Equal(t, 0, sess.Len())
		assert.True(t, sess.Aggregate().Empty())
	})

	t.Run("rejection stops the pipeline", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		analyzer := &gemini.MockAnalyzer{
			AnalyzeFunc: func(_ context.Context, _ []byte, _ string) (service.ImageAnalysis, error) {
				return service.ImageAnalysis{IsFinancial: false}, nil
			},
		}

		_, err := sess.IngestImages(ctx, analyzer, images)
		require.NoError(t, err)
		assert.Equal(t, 1, analyzer.Calls)
	})

	t.Run("analyzer error aborts without merging", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		analyzerErr := errors.New("upstream unavailable")
		analyzer := &gemini.MockAnalyzer{
			AnalyzeFunc: func(_ context.Context, _ []byte, _ string) (service.ImageAnalysis, error) {
				return service.ImageAnalysis{}, analyzerErr
			},
		}

		_, err := sess.IngestImages(ctx, analyzer, images)
		require.ErrorIs(t, err, analyzerErr)
		assert.Equal(t, 0, sess.Len())
	})

	t.Run("amounts are sign-normalized and categories parsed", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		analyzer := &gemini.MockAnalyzer{
			AnalyzeFunc: func(_ context.Context, _ []byte, _ string) (service.ImageAnalysis, error) {
				return service.ImageAnalysis{
					IsFinancial: true,
					Transactions: []model.RawRecord{
						{Item: "환불건", Amount: -9000, Category: "쇼핑"},
						{Item: "PG_결제", Amount: 5000, Category: "기타"},
					},
				}, nil
			},
		}

		result, err := sess.IngestImages(ctx, analyzer, images[:1])
		require.NoError(t, err)
		require.Equal(t, 2, result.Count)

		records := sess.Records()
		assert.InDelta(t, 9000, records[0].Amount, 0.001)
		assert.Equal(t, model.CategoryShopping, records[0].Resolved)
		assert.Equal(t, model.CategoryUnknown, records[1].Resolved)
	})

	t.Run("empty batch is valid and merges nothing", func(t *testing.T) {
		sess := session.New(testutil.SetupTestDB(t))

		result, err := sess.IngestImages(ctx, &gemini.MockAnalyzer{}, nil)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, 0, result.Count)
	})
}
