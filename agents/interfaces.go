package agents

import (
	"github.com/kayratasci4/BorsaAI/services"
)

// GeminiServiceInterface is defined in the services package; the alias lets
// agents reference it without importing the concrete implementation.
type GeminiServiceInterface = services.GeminiServiceInterface

// Agent type labels used for metrics and logging
const (
	AgentTypeSentiment = "sentiment"
	AgentTypeTechnical = "technical"
)
