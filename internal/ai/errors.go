package ai

import (
	"errors"
	"fmt"
)

// Provider errors are the only error class that crosses this package's
// boundary; the generation pipeline catches them and falls back to the
// deterministic generator.
var (
	// ErrNoContent means the completion API answered but returned an empty
	// message.
	ErrNoContent = errors.New("no content generated")

	// ErrQuotaExceeded maps HTTP 429 from the provider.
	ErrQuotaExceeded = errors.New("completion API quota exceeded, check billing settings")

	// ErrInvalidCredentials maps HTTP 401 from the provider.
	ErrInvalidCredentials = errors.New("completion API key is invalid, check configuration")

	// ErrProviderUnavailable maps HTTP 5xx from the provider.
	ErrProviderUnavailable = errors.New("completion service is temporarily unavailable")
)

// classifyStatus turns a non-2xx provider status into the matching sentinel.
func classifyStatus(status int) error {
	switch {
	case status == 429:
		return ErrQuotaExceeded
	case status == 401:
		return ErrInvalidCredentials
	case status >= 500:
		return ErrProviderUnavailable
	default:
		return fmt.Errorf("completion API returned status %d", status)
	}
}
