// Package fuzzy scores string similarity on a 0-100 scale and applies the
// business-tuned thresholds used across the screening engine.
package fuzzy

import (
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/gpd-sourcing/supplier-screen/internal/normalize"
)

// Thresholds holds the minimum 0-100 similarity per field for a match.
type Thresholds struct {
	Name    int // fuzzy company-name comparison
	Email   int // full email string comparison
	Website int // full website string comparison
	Domain  int // proprietary-domain comparison, exact at 100
}

// DefaultThresholds returns the tuned production thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Name:    80,
		Email:   90,
		Website: 90,
		Domain:  100,
	}
}

// Ratio computes a normalized edit-distance similarity between two strings,
// scaled to an integer in [0, 100]. Insertions, deletions and substitutions
// weigh equally.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}

	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// IsSimilar normalizes both texts and compares their ratio against the
// threshold. Empty inputs never match anything.
func IsSimilar(a, b string, threshold int) bool {
	if a == "" || b == "" {
		return false
	}
	return Ratio(normalize.Text(a), normalize.Text(b)) >= threshold
}
