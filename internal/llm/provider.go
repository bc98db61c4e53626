package llm

import "context"

// Provider is the single opaque capability interface the pipeline depends on:
// given a prompt, return a text answer. Structured-output tolerance lives in
// the decode layer, not in the providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the raw completion text.
	// A returned error is a hard transport failure and aborts the request.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// System is an optional system message
	System string

	// Prompt is the user prompt
	Prompt string

	// ImageURL, when set, attaches an image (data URL or https URL) for
	// vision-capable models. Providers without a vision path reject it.
	ImageURL string

	// Model overrides the configured model for this call
	Model string

	// Temperature in [0,1]; lower values for structured extraction
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}
