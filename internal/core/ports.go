package core

import (
	"context"
)

// TextClassifier defines the interface for the optional ML scoring capability
type TextClassifier interface {
	// Classify scores a piece of text and returns a label plus confidence
	Classify(ctx context.Context, text string) (*MLResult, error)
}

// RegistrationLookup defines the interface for the optional WHOIS capability
type RegistrationLookup interface {
	// Lookup fetches registration metadata for a domain
	Lookup(ctx context.Context, domain string) (*WhoisInfo, error)
}

// URLExpander defines the interface for resolving shortened URLs.
// Implementations must fail soft: on any error the original raw URL is
// returned unchanged.
type URLExpander interface {
	Expand(ctx context.Context, rawURL string) string
}

// UnavailableClassifier is the degenerate TextClassifier used when no ML
// capability is configured. It always reports the capability as absent.
type UnavailableClassifier struct{}

// Classify reports the ML capability as unavailable
func (UnavailableClassifier) Classify(_ context.Context, _ string) (*MLResult, error) {
	return &MLResult{Available: false}, nil
}

// UnavailableLookup is the degenerate RegistrationLookup used when WHOIS is
// disabled. Lookups always come back unsuccessful.
type UnavailableLookup struct{}

// Lookup reports the registration lookup as unavailable
func (UnavailableLookup) Lookup(_ context.Context, _ string) (*WhoisInfo, error) {
	return &WhoisInfo{Success: false}, nil
}
