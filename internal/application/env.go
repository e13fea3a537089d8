package application

import (
	"os"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/model"
)

// Environment variable names consulted when no durable storage is
// available. Each service has a primary name and a SHOPSCRIBE_-prefixed
// alias; the Anthropic slot additionally honors the OpenAI variable
// kept from the previous text-generation provider.
const (
	EnvAnthropicAPIKey        = "ANTHROPIC_API_KEY"
	EnvAnthropicAPIKeyAlias   = "SHOPSCRIBE_ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey           = "OPENAI_API_KEY"
	EnvUnsplashAccessKey      = "UNSPLASH_ACCESS_KEY"
	EnvUnsplashAccessKeyAlias = "SHOPSCRIBE_UNSPLASH_ACCESS_KEY"
)

// envVarNames returns the lookup order for a service.
func envVarNames(service model.Service) []string {
	switch service {
	case model.ServiceAnthropic:
		return []string{EnvAnthropicAPIKey, EnvAnthropicAPIKeyAlias, EnvOpenAIAPIKey}
	case model.ServiceUnsplash:
		return []string{EnvUnsplashAccessKey, EnvUnsplashAccessKeyAlias}
	}
	return nil
}

// envKey resolves a service key from the process environment, first
// non-empty name wins.
func envKey(service model.Service) string {
	for _, name := range envVarNames(service) {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
