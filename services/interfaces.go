package services

import (
	"context"
	"encoding/json"
)

// GeminiServiceInterface defines the interface for reasoning-service calls
type GeminiServiceInterface interface {
	GenerateWithSearch(ctx context.Context, systemInstruction, prompt string) (*GenerateResult, error)
	GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (string, error)
}

// Compile-time interface verification
var _ GeminiServiceInterface = (*GeminiService)(nil)
