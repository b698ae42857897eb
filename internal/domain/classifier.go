package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultExactDomains are full domains always treated as common, covering
// short-form and regional provider domains the base-name rules miss.
var defaultExactDomains = []string{
	"pm.me",
	"me.com",
	"mac.com",
	"live.com",
	"live.com.au",
	"msn.com",
	"mail.com",
	"mail.ru",
	"web.de",
	"t-online.de",
	"wp.pl",
	"163.com",
	"126.com",
}

// defaultProviderBases are public provider base names matched against the
// leading portion of a domain.
var defaultProviderBases = []string{
	"gmail",
	"googlemail",
	"yahoo",
	"ymail",
	"hotmail",
	"outlook",
	"aol",
	"icloud",
	"protonmail",
	"proton",
	"zoho",
	"gmx",
	"yandex",
	"qq",
	"naver",
	"bigpond",
	"optusnet",
}

// Classifier labels domains as proprietary or common.
type Classifier struct {
	exact map[string]struct{}
	bases []string
}

// NewClassifier builds a classifier from explicit provider lists.
func NewClassifier(exactDomains, providerBases []string) *Classifier {
	c := &Classifier{
		exact: make(map[string]struct{}, len(exactDomains)),
		bases: make([]string, 0, len(providerBases)),
	}
	for _, d := range exactDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			c.exact[d] = struct{}{}
		}
	}
	for _, b := range providerBases {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			c.bases = append(c.bases, b)
		}
	}
	return c
}

// DefaultClassifier returns a classifier with the built-in provider lists.
func DefaultClassifier() *Classifier {
	return NewClassifier(defaultExactDomains, defaultProviderBases)
}

// ProviderList is the YAML shape for overriding the built-in lists.
type ProviderList struct {
	ExactDomains  []string `yaml:"exact_domains"`
	ProviderBases []string `yaml:"provider_bases"`
}

// LoadClassifier reads a provider list YAML file and builds a classifier
// from it. Empty sections fall back to the built-in defaults.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider list: %w", err)
	}

	var list ProviderList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse provider list: %w", err)
	}

	exact := list.ExactDomains
	if len(exact) == 0 {
		exact = defaultExactDomains
	}
	bases := list.ProviderBases
	if len(bases) == 0 {
		bases = defaultProviderBases
	}

	return NewClassifier(exact, bases), nil
}

// IsProprietary reports whether a domain looks organization-owned. An empty
// domain is never proprietary. The exact-domain list is checked first (on
// the domain itself and on its registrable form, so subdomains of a listed
// provider classify common), then the provider base names two ways: the
// first dot-separated label equal to a base, and the domain starting with
// the base. The second rule is deliberately coarse - it also catches the
// base name run straight into further characters, e.g. "gmailuser.com" -
// and downstream matching relies on that behaviour, so keep both rules.
func (c *Classifier) IsProprietary(d string) bool {
	d = strings.ToLower(strings.TrimSpace(d))
	if d == "" {
		return false
	}

	if _, ok := c.exact[d]; ok {
		return false
	}
	if _, ok := c.exact[registrable(d)]; ok {
		return false
	}

	label := d
	if i := strings.Index(d, "."); i >= 0 {
		label = d[:i]
	}
	for _, base := range c.bases {
		if label == base {
			return false
		}
		if strings.HasPrefix(d, base) {
			return false
		}
	}

	return true
}
