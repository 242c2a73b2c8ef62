// Package policy holds the corporate email allowlist predicate.
package policy

import "strings"

// AllowedDomain is the only email domain eligible for accounts.
const AllowedDomain = "@demandvibes.com"

// IsAllowedDomain reports whether email belongs to the allowed domain.
// The match is a case-insensitive suffix check; no wildcard or
// multi-domain support.
func IsAllowedDomain(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), AllowedDomain)
}

// DomainRejectionMessage explains why an email was rejected.
func DomainRejectionMessage() string {
	return "This email is not eligible. Use your DemandVibes work email."
}
