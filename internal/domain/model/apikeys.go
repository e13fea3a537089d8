package model

// APIKeys holds the current key for every known service. A field is
// never absent, only possibly empty. The struct is a plain value type:
// copying it yields an independent snapshot, which is what every read
// path hands out.
type APIKeys struct {
	Anthropic string `json:"anthropicApiKey"`
	Unsplash  string `json:"unsplashAccessKey"`
}

// Get returns the key for the given service, or "" for an unknown one.
func (k APIKeys) Get(service Service) string {
	switch service {
	case ServiceAnthropic:
		return k.Anthropic
	case ServiceUnsplash:
		return k.Unsplash
	}
	return ""
}

// Set stores the key for the given service. Unknown services are ignored.
func (k *APIKeys) Set(service Service, value string) {
	switch service {
	case ServiceAnthropic:
		k.Anthropic = value
	case ServiceUnsplash:
		k.Unsplash = value
	}
}

// Merge applies only the fields present in partial onto k, leaving the
// rest untouched.
func (k *APIKeys) Merge(partial map[Service]string) {
	for service, value := range partial {
		k.Set(service, value)
	}
}

// IsEmpty reports whether no service has a key.
func (k APIKeys) IsEmpty() bool {
	for _, service := range Services() {
		if k.Get(service) != "" {
			return false
		}
	}
	return true
}
