package llm

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// Registry lazily constructs one client per provider and reuses it for the
// lifetime of the process. The credential is read from the environment at
// first use so that front-ends which set keys after startup still work.
type Registry struct {
	mu      sync.Mutex
	clients map[Provider]Client

	// dial is swapped out in tests to avoid constructing real SDK clients.
	dial func(ctx context.Context, provider Provider, apiKey string) (Client, error)
}

// NewRegistry creates an empty client registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[Provider]Client),
		dial:    dialProvider,
	}
}

// ClientFor returns the cached client for provider, constructing it on first
// use. A missing credential or unknown provider tag is a configuration error.
func (r *Registry) ClientFor(ctx context.Context, provider Provider) (Client, error) {
	if !provider.Valid() {
		return nil, fmt.Errorf("unsupported LLM provider: %q", provider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[provider]; ok {
		return client, nil
	}

	apiKey := os.Getenv(provider.CredentialVar())
	if apiKey == "" {
		return nil, fmt.Errorf("%s is not set", provider.CredentialVar())
	}

	client, err := r.dial(ctx, provider, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", provider, err)
	}

	r.clients[provider] = client
	return client, nil
}

func dialProvider(ctx context.Context, provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderClaude:
		return NewClaudeClient(apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", provider)
	}
}
