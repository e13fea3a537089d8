// Package model defines the domain types for API key resolution:
// the closed set of external services, the key map, the versioned
// storage envelope, and validation results.
package model

import "fmt"

// Service identifies one of the external providers whose API key the
// subsystem manages. The set is closed and known at compile time.
type Service string

const (
	// ServiceAnthropic is the text-generation provider.
	ServiceAnthropic Service = "anthropic"
	// ServiceUnsplash is the image-search provider.
	ServiceUnsplash Service = "unsplash"
)

// Services returns every known service in fixed declaration order.
func Services() []Service {
	return []Service{ServiceAnthropic, ServiceUnsplash}
}

// ParseService converts external input ("anthropic", "unsplash") into a
// Service, rejecting anything outside the closed set.
func ParseService(s string) (Service, error) {
	switch Service(s) {
	case ServiceAnthropic, ServiceUnsplash:
		return Service(s), nil
	}
	return "", fmt.Errorf("unknown service %q", s)
}

// DisplayName returns the human-readable provider name used in
// validation messages.
func (s Service) DisplayName() string {
	switch s {
	case ServiceAnthropic:
		return "Anthropic"
	case ServiceUnsplash:
		return "Unsplash"
	}
	return string(s)
}
