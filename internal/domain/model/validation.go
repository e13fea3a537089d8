package model

// ValidationResult reports the outcome of validating a single service
// key. It is returned by value and never carries an error: every
// failure mode collapses into IsValid=false plus a message.
type ValidationResult struct {
	IsValid  bool    `json:"isValid"`
	Message  string  `json:"message"`
	Provider Service `json:"provider"`
}
