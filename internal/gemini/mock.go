package gemini

import (
	"context"

	"github.com/spendy-app/spendy/internal/service"
)

// MockAnalyzer is a configurable test double for the image analyzer.
type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, image []byte, mimeType string) (service.ImageAnalysis, error)
	Calls       int
}

// AnalyzeTransactionImage implements service.ImageAnalyzer.
func (m *MockAnalyzer) AnalyzeTransactionImage(ctx context.Context, image []byte, mimeType string) (service.ImageAnalysis, error) {
	m.Calls++
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, image, mimeType)
	}
	return service.ImageAnalysis{IsFinancial: true}, nil
}

// MockIconGenerator is a configurable test double for the icon generator.
type MockIconGenerator struct {
	GenerateFunc func(ctx context.Context, prompt, color string) (string, error)
	Calls        int
}

// GenerateIcon implements service.IconGenerator.
func (m *MockIconGenerator) GenerateIcon(ctx context.Context, prompt, color string) (string, error) {
	m.Calls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, color)
	}
	return placeholderIcon, nil
}
