// Package llm provides centralized LLM configuration and client abstractions.
// This package enables switching between providers and model tiers without
// touching the pipeline stages that consume them.
package llm

import (
	"fmt"
	"sort"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define the supported LLM providers
const (
	// ProviderClaude is the Anthropic/Claude provider
	ProviderClaude Provider = "claude"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierFast is for simple tasks: classification, extraction
	TierFast ModelTier = "fast"
	// TierPowerful is for generative tasks: CV tailoring, letter composition
	TierPowerful ModelTier = "powerful"
)

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	return p == ProviderClaude || p == ProviderGemini
}

// CredentialVar returns the environment variable holding the provider's API key.
func (p Provider) CredentialVar() string {
	switch p {
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// Providers returns the supported providers in stable order.
func Providers() []Provider {
	return []Provider{ProviderClaude, ProviderGemini}
}

// Catalog is the total mapping of provider and tier to a concrete model name.
// It is immutable for the duration of a pipeline run.
type Catalog map[Provider]map[ModelTier]string

// DefaultCatalog returns the model catalog used in production.
func DefaultCatalog() Catalog {
	return Catalog{
		ProviderClaude: {
			TierFast:     "claude-3-5-haiku-20241022",
			TierPowerful: "claude-3-7-sonnet-latest",
		},
		ProviderGemini: {
			TierFast:     "gemini-2.5-flash",
			TierPowerful: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a provider and tier.
func (c Catalog) Model(provider Provider, tier ModelTier) (string, error) {
	tiers, ok := c[provider]
	if !ok {
		return "", fmt.Errorf("no models configured for provider %q", provider)
	}
	model, ok := tiers[tier]
	if !ok || model == "" {
		return "", fmt.Errorf("no %s model configured for provider %q", tier, provider)
	}
	return model, nil
}

// Tiers returns the tiers configured for a provider in stable order.
func (c Catalog) Tiers(provider Provider) []ModelTier {
	tiers := make([]ModelTier, 0, len(c[provider]))
	for tier := range c[provider] {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}
