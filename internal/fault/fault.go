// Package fault defines the error taxonomy shared by the gateways and the
// dispatcher. Every error here is recoverable: the dispatcher converts it to
// a user-visible string and the interactive loop keeps running.
package fault

import (
	"fmt"
	"strings"
)

// ConfigurationError marks a feature disabled because its API key or other
// required configuration is missing. The feature fails at call time; startup
// is never blocked by it.
type ConfigurationError struct {
	Feature string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// ProviderError wraps an HTTP, auth, or rate-limit failure from an external
// provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NotFoundError reports a missing referent: an unknown city, an article index
// outside the current batch, or a follow-up command with nothing to follow up
// on. What is a short user-facing phrase, e.g. "no such article".
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What }

// ModerationRejection reports content blocked by the moderation check.
// Nothing flagged is ever forwarded to a provider or printed.
type ModerationRejection struct {
	Categories []string
}

func (e *ModerationRejection) Error() string {
	if len(e.Categories) == 0 {
		return "content rejected by moderation"
	}
	return "content rejected by moderation: " + strings.Join(e.Categories, ", ")
}
