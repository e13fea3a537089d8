package application

import (
	"regexp"
	"strings"

	"github.com/shopscribe/credstore/internal/domain/model"
)

const (
	// anthropicKeyPrefix is the literal prefix every Anthropic API key
	// carries.
	anthropicKeyPrefix = "sk-ant-"
	// anthropicMinSuffixLen is the minimum number of characters required
	// after the prefix.
	anthropicMinSuffixLen = 20
	// unsplashMinKeyLen is the minimum total length of an Unsplash
	// access key.
	unsplashMinKeyLen = 20
)

// keyCharset matches the characters allowed in a key body: letters,
// digits, underscore, and hyphen. No whitespace, no other punctuation.
var keyCharset = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateFormat is the pure structural check of a candidate key for a
// service. It trims surrounding whitespace first and never touches the
// network.
func ValidateFormat(service model.Service, candidate string) bool {
	key := strings.TrimSpace(candidate)

	switch service {
	case model.ServiceAnthropic:
		if !strings.HasPrefix(key, anthropicKeyPrefix) {
			return false
		}
		suffix := strings.TrimPrefix(key, anthropicKeyPrefix)
		return len(suffix) >= anthropicMinSuffixLen && keyCharset.MatchString(suffix)
	case model.ServiceUnsplash:
		return len(key) >= unsplashMinKeyLen && keyCharset.MatchString(key)
	}
	return false
}

// FormatProblem describes why a key failed ValidateFormat, phrased for
// the validation result message.
func FormatProblem(service model.Service) string {
	switch service {
	case model.ServiceAnthropic:
		return "Invalid Anthropic API key format"
	case model.ServiceUnsplash:
		return "Invalid Unsplash access key format"
	}
	return "Invalid API key format"
}
