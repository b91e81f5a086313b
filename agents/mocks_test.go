package agents

import (
	"context"
	"encoding/json"

	"github.com/kayratasci4/BorsaAI/services"
)

// mockGeminiService implements GeminiServiceInterface for testing
type mockGeminiService struct {
	searchFunc     func(ctx context.Context, systemInstruction, prompt string) (*services.GenerateResult, error)
	structuredFunc func(ctx context.Context, prompt string, schema json.RawMessage) (string, error)
}

func (m *mockGeminiService) GenerateWithSearch(ctx context.Context, systemInstruction, prompt string) (*services.GenerateResult, error) {
	return m.searchFunc(ctx, systemInstruction, prompt)
}

func (m *mockGeminiService) GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	return m.structuredFunc(ctx, prompt, schema)
}
