package gemini

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendy-app/spendy/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, slog.Default())
	require.NoError(t, err)
	return client
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
}

func TestNewClient(t *testing.T) {
	t.Run("requires an API key", func(t *testing.T) {
		_, err := NewClient(Config{}, slog.Default())
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "key"}, slog.Default())
		require.NoError(t, err)
		assert.Equal(t, defaultBaseURL, client.baseURL)
		assert.Equal(t, defaultTextModel, client.textModel)
		assert.Equal(t, defaultImageGen, client.imageModel)
	})
}

func TestAnalyzeTransactionImage(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the structured verdict", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

			payload := `{"isFinancial": true, "transactions": [` +
				`{"item": "스타벅스", "amount": 4500, "category": "식비"},` +
				`{"item": "택시", "amount": 12000, "category": "교통비"}]}`
			_ = json.NewEncoder(w).Encode(textResponse(payload))
		})

		analysis, err := client.AnalyzeTransactionImage(ctx, []byte("image-bytes"), "image/jpeg")
		require.NoError(t, err)
		assert.True(t, analysis.IsFinancial)
		require.Len(t, analysis.Transactions, 2)
		assert.Equal(t, "스타벅스", analysis.Transactions[0].Item)
		assert.InDelta(t, 4500, analysis.Transactions[0].Amount, 0.001)
		assert.Equal(t, "식비", analysis.Transactions[0].Category)
	})

	t.Run("non-financial verdict", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(textResponse(`{"isFinancial": false, "transactions": []}`))
		})

		analysis, err := client.AnalyzeTransactionImage(ctx, []byte("cat-photo"), "image/jpeg")
		require.NoError(t, err)
		assert.False(t, analysis.IsFinancial)
		assert.Empty(t, analysis.Transactions)
	})

	t.Run("upstream failure degrades to non-financial", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		})

		analysis, err := client.AnalyzeTransactionImage(ctx, []byte("image"), "image/jpeg")
		require.NoError(t, err)
		assert.False(t, analysis.IsFinancial)
	})

	t.Run("malformed verdict degrades to non-financial", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(textResponse("not json at all"))
		})

		analysis, err := client.AnalyzeTransactionImage(ctx, []byte("image"), "image/jpeg")
		require.NoError(t, err)
		assert.False(t, analysis.IsFinancial)
	})

	t.Run("context cancellation surfaces as an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(textResponse(`{"isFinancial": true, "transactions": []}`))
		})

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := client.AnalyzeTransactionImage(canceled, []byte("image"), "image/jpeg")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerateIcon(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a data URI", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{{
					"content": map[string]any{
						"parts": []map[string]any{{
							"inlineData": map[string]any{
								"mimeType": "image/png",
								"data":     "aWNvbg==",
							},
						}},
					},
				}},
			})
		})

		ref, err := client.GenerateIcon(ctx, "A fork and knife crossed", "#FFB800")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,aWNvbg==", ref)
	})

	t.Run("failure yields the placeholder, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		ref, err := client.GenerateIcon(ctx, "prompt", "#FFB800")
		require.NoError(t, err)
		assert.Equal(t, placeholderIcon, ref)
	})

	t.Run("text-only reply yields the placeholder", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(textResponse("cannot generate that"))
		})

		ref, err := client.GenerateIcon(ctx, "prompt", "#FFB800")
		require.NoError(t, err)
		assert.Equal(t, placeholderIcon, ref)
	})
}

// Guards the category labels the analyzer is instructed to emit; they must
// stay in lockstep with the model enumeration.
func TestAnalyzePromptCategories(t *testing.T) {
	for _, c := range model.Categories() {
		assert.Contains(t, analyzePrompt, c.String())
	}
	assert.Contains(t, analyzePrompt, model.CategoryUnknown.String())
}
