package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"threshold above range", func(c *Config) { c.NameThreshold = 101 }, true},
		{"threshold below range", func(c *Config) { c.DomainThreshold = -1 }, true},
		{"zero max conns", func(c *Config) { c.DBMaxConns = 0 }, true},
		{"bad port", func(c *Config) { c.HTTPPort = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				NameThreshold:    80,
				EmailThreshold:   90,
				WebsiteThreshold: 90,
				DomainThreshold:  100,
				DBMaxConns:       20,
				HTTPPort:         8080,
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestThresholds(t *testing.T) {
	cfg := Config{NameThreshold: 75, EmailThreshold: 85, WebsiteThreshold: 95, DomainThreshold: 100}
	th := cfg.Thresholds()
	if th.Name != 75 || th.Email != 85 || th.Website != 95 || th.Domain != 100 {
		t.Errorf("unexpected thresholds: %+v", th)
	}
}
