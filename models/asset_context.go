package models

import "strings"

// AssetContext keys every downstream request for the current view. It is
// created whole on each successful search submission and never mutated.
type AssetContext struct {
	Query       string `json:"query"`
	DisplayName string `json:"displayName"`
}

// DefaultAssetContext is the context shown on initial load.
var DefaultAssetContext = AssetContext{Query: "BIST 100", DisplayName: "BIST 100 Endeksi"}

// ResolveAssetContext normalizes a raw user query into an asset context.
// Returns false for empty or whitespace-only input, in which case the
// current context must be left unchanged.
func ResolveAssetContext(raw string) (AssetContext, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AssetContext{}, false
	}
	return AssetContext{
		Query:       trimmed,
		DisplayName: strings.ToUpper(trimmed),
	}, true
}
