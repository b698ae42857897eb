// Package engine decides whether two supplier records denote the same
// real-world entity. It compares normalized names, emails, websites and
// organization-owned domains against a reference collection and reports
// which predicates fired for the first matching reference entry.
package engine

import (
	"strings"

	"github.com/gpd-sourcing/supplier-screen/internal/domain"
)

// Record is one supplier/contact candidate. Only the name is required for
// matching; a record with an empty name is skipped. Records are plain
// value objects - equality is structural.
type Record struct {
	Name    string
	Email   string
	Website string
}

// EmailDomain returns the bare domain of the record's email, or "".
func (r Record) EmailDomain() string {
	return domain.FromEmail(r.Email)
}

// WebsiteDomain returns the bare domain of the record's website, or "".
func (r Record) WebsiteDomain() string {
	return domain.FromWebsite(r.Website)
}

// HasName reports whether the record carries a non-blank name.
func (r Record) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// IsEmpty reports whether all three fields are blank.
func (r Record) IsEmpty() bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Email) == "" &&
		strings.TrimSpace(r.Website) == ""
}
