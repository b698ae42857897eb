package domain

import (
	"testing"
)

func TestFromEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sales@acme-wines.com", "acme-wines.com"},
		{"Sales@Acme-Wines.COM", "acme-wines.com"},
		{"  john@gmail.com  ", "gmail.com"},
		{"not-an-email", ""},
		{"two@at@signs.com", ""},
		{"trailing@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FromEmail(tt.input); got != tt.want {
				t.Errorf("FromEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromWebsite(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.acme-wines.com", "acme-wines.com"},
		{"http://acme-wines.com/shop/reds", "acme-wines.com"},
		{"HTTPS://WWW.Acme-Wines.com", "acme-wines.com"},
		{"www.acme-wines.com:8080/path", "acme-wines.com"},
		{"acme-wines.com", "acme-wines.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FromWebsite(tt.input); got != tt.want {
				t.Errorf("FromWebsite(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsProprietary(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		domain string
		want   bool
	}{
		{"gmail.com", false},
		{"yahoo.co.uk", false},
		{"yahoo.fr", false},
		{"hotmail.com", false},
		{"gmailuser.com", false}, // coarse prefix rule
		{"pm.me", false},         // exact-list override
		{"imap.me.com", false},   // subdomain of an exact-listed provider
		{"", false},
		{"chateau-margaux.com", true},
		{"acme-wines.com", true},
		{"penfolds.com.au", true},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := c.IsProprietary(tt.domain); got != tt.want {
				t.Errorf("IsProprietary(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestClassifierCustomLists(t *testing.T) {
	c := NewClassifier([]string{"internal.example"}, []string{"corpmail"})

	if c.IsProprietary("internal.example") {
		t.Error("exact-listed domain should be common")
	}
	if c.IsProprietary("corpmail.io") {
		t.Error("base-listed provider should be common")
	}
	if !c.IsProprietary("gmail.com") {
		t.Error("custom lists replace the defaults entirely")
	}
}
