// Package domain derives bare internet domains from contact fields and
// classifies them as organization-owned ("proprietary") or shared public
// providers ("common"). Two unrelated suppliers both using gmail.com is not
// evidence of identity, so common domains carry no matching signal.
package domain

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// FromEmail extracts the domain from an email address, lowercased.
// Returns "" for anything that does not look like local@domain.
func FromEmail(email string) string {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 || parts[1] == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(parts[1]))
}

// FromWebsite extracts the bare host from a website URL: scheme and a
// leading www. are stripped, and any path or port suffix is cut off.
// Returns "" for empty input. Never fails on malformed URLs.
func FromWebsite(url string) string {
	s := strings.ToLower(strings.TrimSpace(url))
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")

	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}

// registrable reduces a domain to its registrable form (eTLD+1), e.g.
// imap.me.com -> me.com. Falls back to the input when the public suffix
// list cannot place it.
func registrable(d string) string {
	r, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return d
	}
	return r
}
