package engine

import (
	"github.com/gpd-sourcing/supplier-screen/internal/domain"
	"github.com/gpd-sourcing/supplier-screen/internal/fuzzy"
)

// Predicate names. Each maps to a boolean in MatchResult.Flags so callers
// can iterate the full predicate set generically.
const (
	PredName              = "name"
	PredEmail             = "email"
	PredWebsite           = "website"
	PredEmailDomain       = "email_domain"
	PredWebsiteDomain     = "website_domain"
	PredCrossEmailWebsite = "cross_email_website" // candidate email domain vs reference website domain
	PredCrossWebsiteEmail = "cross_website_email" // candidate website domain vs reference email domain
)

// PredicateNames lists every predicate the matcher evaluates, in a stable
// order for reporting.
var PredicateNames = []string{
	PredName,
	PredEmail,
	PredWebsite,
	PredEmailDomain,
	PredWebsiteDomain,
	PredCrossEmailWebsite,
	PredCrossWebsiteEmail,
}

// MatchResult records one candidate-vs-reference decision: which candidate
// row matched, which reference entry it matched, and which predicates
// fired. Never mutated after creation.
type MatchResult struct {
	Row       int // candidate row index, pre-removal numbering
	Candidate Record
	Matched   Record // the reference entry that matched, for audit/display
	Flags     map[string]bool
}

// DomainBacked reports whether any proprietary-domain predicate fired.
func (m *MatchResult) DomainBacked() bool {
	return m.Flags[PredEmailDomain] || m.Flags[PredWebsiteDomain] ||
		m.Flags[PredCrossEmailWebsite] || m.Flags[PredCrossWebsiteEmail]
}

// FiredPredicates returns the names of the predicates that fired, in the
// order of PredicateNames.
func (m *MatchResult) FiredPredicates() []string {
	var fired []string
	for _, name := range PredicateNames {
		if m.Flags[name] {
			fired = append(fired, name)
		}
	}
	return fired
}

// Matcher evaluates candidates against a reference collection.
type Matcher struct {
	thresholds fuzzy.Thresholds
	classifier *domain.Classifier
}

// NewMatcher creates a matcher with the given thresholds and domain
// classifier.
func NewMatcher(thresholds fuzzy.Thresholds, classifier *domain.Classifier) *Matcher {
	return &Matcher{
		thresholds: thresholds,
		classifier: classifier,
	}
}

// FindMatch scans the reference collection in order and returns a result
// for the first entry where any predicate fires, or nil when the candidate
// matches nothing. Candidates without a name are not matchable. Scan order
// determines which reference entry is attributed, not the best score.
func (m *Matcher) FindMatch(candidate Record, references []Record) *MatchResult {
	if !candidate.HasName() {
		return nil
	}

	candEmailDom := candidate.EmailDomain()
	candWebDom := candidate.WebsiteDomain()

	for _, ref := range references {
		if !ref.HasName() {
			continue
		}

		flags := map[string]bool{
			PredName:    fuzzy.IsSimilar(candidate.Name, ref.Name, m.thresholds.Name),
			PredEmail:   candidate.Email != "" && ref.Email != "" && fuzzy.IsSimilar(candidate.Email, ref.Email, m.thresholds.Email),
			PredWebsite: candidate.Website != "" && ref.Website != "" && fuzzy.IsSimilar(candidate.Website, ref.Website, m.thresholds.Website),
		}

		refEmailDom := ref.EmailDomain()
		refWebDom := ref.WebsiteDomain()

		flags[PredEmailDomain] = m.domainsMatch(candEmailDom, refEmailDom)
		flags[PredWebsiteDomain] = m.domainsMatch(candWebDom, refWebDom)
		flags[PredCrossEmailWebsite] = m.domainsMatch(candEmailDom, refWebDom)
		flags[PredCrossWebsiteEmail] = m.domainsMatch(candWebDom, refEmailDom)

		if anyFlag(flags) {
			return &MatchResult{
				Candidate: candidate,
				Matched:   ref,
				Flags:     flags,
			}
		}
	}

	return nil
}

// FindMatches runs FindMatch over an ordered candidate batch and returns
// one result per candidate that matched, with Row set to the candidate's
// index. O(candidates x references); fine at thousands of rows, a known
// hot path beyond that.
func (m *Matcher) FindMatches(candidates, references []Record) []*MatchResult {
	var results []*MatchResult
	for i, candidate := range candidates {
		if result := m.FindMatch(candidate, references); result != nil {
			result.Row = i
			results = append(results, result)
		}
	}
	return results
}

// PossibleFalsePositive reports whether a match rests on text similarity
// alone while every domain in play is a shared public provider. Such
// matches deserve a manual look before the row is acted on.
func (m *Matcher) PossibleFalsePositive(result *MatchResult) bool {
	if result == nil || result.DomainBacked() {
		return false
	}

	for _, d := range []string{
		result.Candidate.EmailDomain(),
		result.Candidate.WebsiteDomain(),
		result.Matched.EmailDomain(),
		result.Matched.WebsiteDomain(),
	} {
		if d != "" && m.classifier.IsProprietary(d) {
			return false
		}
	}

	return true
}

// domainsMatch gates domain comparison on both sides being proprietary,
// then applies the domain threshold. At the default threshold of 100 this
// is exact equality after normalization; common provider domains never
// match each other by construction.
func (m *Matcher) domainsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if !m.classifier.IsProprietary(a) || !m.classifier.IsProprietary(b) {
		return false
	}
	return fuzzy.IsSimilar(a, b, m.thresholds.Domain)
}

func anyFlag(flags map[string]bool) bool {
	for _, v := range flags {
		if v {
			return true
		}
	}
	return false
}
