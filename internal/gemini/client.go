// Package gemini provides the remote image classification and icon
// generation collaborators, backed by the Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

const (
	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel = "gemini-2.5-flash"
	defaultImageGen  = "gemini-2.5-flash-image"

	// placeholderIcon is returned when icon generation fails; icons are
	// cosmetic and must never block a result from rendering.
	placeholderIcon = "https://picsum.photos/100"
)

const analyzePrompt = "Analyze this image. First, determine if it is a financial document like a bank statement, receipt, or transaction history screenshot. If it's not a financial document (e.g., a photo of a cat, a landscape), set isFinancial to false and return an empty transactions array. If it IS a financial document, identify only the EXPENSE transactions (ignore deposits or transfers). For each expense, extract the vendor/item name, the amount, and categorize it into one of the following: '식비', '쇼핑', '주거', '교통비', '문화/여가', '생활비'. If the category is ambiguous or the vendor is unknown (e.g., 'PG_결제'), categorize it as '알 수 없음'. Recognize Korean company names (e.g., '스타벅스', '카카오택시', 'CU', '올리브영') for categorization. Return the result in the specified JSON format."

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// Client implements service.ImageAnalyzer and service.IconGenerator.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
}

// NewClient creates a new Gemini API client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	textModel := cfg.TextModel
	if textModel == "" {
		textModel = defaultTextModel
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = defaultImageGen
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		textModel:  textModel,
		imageModel: imageModel,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// analyzedImage mirrors the JSON schema requested from the model.
type analyzedImage struct {
	IsFinancial  bool `json:"isFinancial"`
	Transactions []struct {
		Item     string  `json:"item"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
	} `json:"transactions"`
}

// AnalyzeTransactionImage classifies one uploaded document image. Failures
// other than context cancellation degrade to a non-financial verdict so a
// flaky upstream rejects the batch instead of crashing the flow.
func (c *Client) AnalyzeTransactionImage(ctx context.Context, image []byte, mimeType string) (service.ImageAnalysis, error) {
	requestBody := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"inline_data": map[string]any{
					"mime_type": mimeType,
					"data":      base64.StdEncoding.EncodeToString(image),
				}},
				{"text": analyzePrompt},
			},
		}},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"isFinancial": map[string]any{"type": "BOOLEAN"},
					"transactions": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"item":     map[string]any{"type": "STRING"},
								"amount":   map[string]any{"type": "NUMBER"},
								"category": map[string]any{"type": "STRING"},
							},
							"required": []string{"item", "amount", "category"},
						},
					},
				},
				"required": []string{"isFinancial", "transactions"},
			},
		},
	}

	text, err := c.generateContent(ctx, c.textModel, requestBody)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return service.ImageAnalysis{}, err
		}
		c.logger.Error("image analysis failed, treating image as non-financial", "error", err)
		return service.ImageAnalysis{IsFinancial: false}, nil
	}

	var parsed analyzedImage
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		c.logger.Error("failed to parse analysis response, treating image as non-financial", "error", err)
		return service.ImageAnalysis{IsFinancial: false}, nil
	}

	analysis := service.ImageAnalysis{IsFinancial: parsed.IsFinancial}
	for _, t := range parsed.Transactions {
		analysis.Transactions = append(analysis.Transactions, model.RawRecord{
			Item:     t.Item,
			Amount:   t.Amount,
			Category: t.Category,
		})
	}
	return analysis, nil
}

// GenerateIcon asks the image model for a claymorphism-style icon and
// returns it as a data URI. On any failure a placeholder URL is returned
// instead of an error; one missing icon must not block the others.
func (c *Client) GenerateIcon(ctx context.Context, prompt, color string) (string, error) {
	iconPrompt := fmt.Sprintf(`Generate a cute and friendly 3D icon representing %q. The icon should have a soft, rounded, clay-like appearance (claymorphism). It should feature a simple, easily recognizable graphic on a solid-colored squircle background. The background color for the squircle must be exactly this hex code: %s. The main graphic should be white or a very light pastel color to contrast with the background. Ensure the lighting is soft and there are subtle shadows to give it a 3D feel. The overall style should be playful and modern. High quality.`, prompt, color)

	requestBody := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{{"text": iconPrompt}},
		}},
		"generationConfig": map[string]any{
			"responseModalities": []string{"IMAGE"},
		},
	}

	data, mimeType, err := c.generateImage(ctx, c.imageModel, requestBody)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		c.logger.Error("icon generation failed, using placeholder", "prompt", prompt, "error", err)
		return placeholderIcon, nil
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, data), nil
}

// generateResponse is the subset of the generateContent reply we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generateContent(ctx context.Context, geminiModel string, body map[string]any) (string, error) {
	resp, err := c.post(ctx, geminiModel, body)
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("no text content in response")
}

func (c *Client) generateImage(ctx context.Context, geminiModel string, body map[string]any) (data, mimeType string, err error) {
	resp, err := c.post(ctx, geminiModel, body)
	if err != nil {
		return "", "", err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return part.InlineData.Data, part.InlineData.MimeType, nil
			}
			if part.Text != "" {
				c.logger.Debug("image generation returned text part", "text", part.Text)
			}
		}
	}
	return "", "", fmt.Errorf("no image data found in response")
}

func (c *Client) post(ctx context.Context, geminiModel string, body map[string]any) (*generateResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &parsed, nil
}
