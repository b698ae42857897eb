package engine

import (
	"testing"

	"github.com/gpd-sourcing/supplier-screen/internal/domain"
	"github.com/gpd-sourcing/supplier-screen/internal/fuzzy"
)

func newTestMatcher() *Matcher {
	return NewMatcher(fuzzy.DefaultThresholds(), domain.DefaultClassifier())
}

func TestFindMatchNameAfterSuffixStripping(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Chateau Margaux Pty Ltd"}
	references := []Record{{Name: "Chateau Margaux"}}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match")
	}
	if !result.Flags[PredName] {
		t.Error("expected the name predicate to fire")
	}
	if result.Matched.Name != "Chateau Margaux" {
		t.Errorf("matched wrong reference: %q", result.Matched.Name)
	}
}

func TestFindMatchCrossDomain(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines", Email: "sales@acme-wines.com"}
	references := []Record{{Name: "Different Co", Website: "acme-wines.com"}}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match")
	}
	if !result.Flags[PredCrossEmailWebsite] {
		t.Error("expected the email-vs-website cross predicate to fire")
	}
	if result.Flags[PredName] {
		t.Error("name predicate should not fire for unrelated names")
	}
	if !result.DomainBacked() {
		t.Error("cross-domain match should count as domain-backed")
	}
}

func TestFindMatchCommonDomainCarriesNoSignal(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines", Email: "john@gmail.com"}
	references := []Record{{Name: "Zeta Imports", Email: "jane@gmail.com"}}

	if result := m.FindMatch(candidate, references); result != nil {
		t.Errorf("shared gmail.com must not produce a match, got flags %v", result.Flags)
	}
}

func TestFindMatchProprietaryDomainEquality(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines", Email: "sales@acme-wines.com"}
	references := []Record{{Name: "Totally Unrelated", Email: "info@acme-wines.com"}}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match on shared proprietary email domain")
	}
	if !result.Flags[PredEmailDomain] {
		t.Error("expected the email-domain predicate to fire")
	}
}

func TestFindMatchSkipsEmptyName(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Email: "sales@acme-wines.com"}
	references := []Record{{Name: "Acme", Email: "sales@acme-wines.com"}}

	if result := m.FindMatch(candidate, references); result != nil {
		t.Error("candidates without a name are not matchable")
	}
}

func TestFindMatchSkipsNamelessReferences(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines"}
	references := []Record{
		{Name: "", Email: "x@acme-wines.com"},
		{Name: "Acme Wines"},
	}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match against the named reference")
	}
	if result.Matched.Name != "Acme Wines" {
		t.Errorf("matched wrong reference: %q", result.Matched.Name)
	}
}

func TestFindMatchFirstReferenceWins(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines"}
	references := []Record{
		{Name: "Acme Wines", Email: "first@acme-wines.com"},
		{Name: "Acme Wines", Email: "second@acme-wines.com"},
	}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match")
	}
	if result.Matched.Email != "first@acme-wines.com" {
		t.Errorf("expected first reference in scan order, got %q", result.Matched.Email)
	}
}

func TestFindMatchMalformedFieldsDegrade(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines", Email: "no-at-sign", Website: "://///"}
	references := []Record{{Name: "Zeta Imports", Email: "broken@", Website: ""}}

	if result := m.FindMatch(candidate, references); result != nil {
		t.Errorf("malformed fields should degrade to no match, got flags %v", result.Flags)
	}
}

func TestFindMatchesRowIndices(t *testing.T) {
	m := newTestMatcher()

	candidates := []Record{
		{Name: "No Such Winery"},
		{Name: "Chateau Margaux Pty Ltd"},
		{Name: ""},
		{Name: "Acme Wines"},
	}
	references := []Record{
		{Name: "Chateau Margaux"},
		{Name: "Acme Wines"},
	}

	results := m.FindMatches(candidates, references)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Row != 1 || results[1].Row != 3 {
		t.Errorf("wrong row attribution: %d, %d", results[0].Row, results[1].Row)
	}
}

func TestPossibleFalsePositive(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name      string
		candidate Record
		reference Record
		want      bool
	}{
		{
			name:      "text match with only common domains",
			candidate: Record{Name: "Acme Wines", Email: "acme@gmail.com"},
			reference: Record{Name: "Acme Wines", Email: "acme.wines@yahoo.com"},
			want:      true,
		},
		{
			name:      "text match but candidate owns its domain",
			candidate: Record{Name: "Acme Wines", Email: "sales@acme-wines.com"},
			reference: Record{Name: "Acme Wines", Email: "acme@gmail.com"},
			want:      false,
		},
		{
			name:      "no domains at all",
			candidate: Record{Name: "Acme Wines"},
			reference: Record{Name: "Acme Wines"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.FindMatch(tt.candidate, []Record{tt.reference})
			if result == nil {
				t.Fatal("expected a match")
			}
			if got := m.PossibleFalsePositive(result); got != tt.want {
				t.Errorf("PossibleFalsePositive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiredPredicatesOrder(t *testing.T) {
	m := newTestMatcher()

	candidate := Record{Name: "Acme Wines", Website: "acme-wines.com"}
	references := []Record{{Name: "Acme Wines", Website: "acme-wines.com/"}}

	result := m.FindMatch(candidate, references)
	if result == nil {
		t.Fatal("expected a match")
	}

	fired := result.FiredPredicates()
	want := []string{PredName, PredWebsite, PredWebsiteDomain}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired = %v, want %v", fired, want)
		}
	}
}
