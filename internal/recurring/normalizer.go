// Package recurring collapses noisy merchant description strings into
// canonical labels and infers which labels bill on a monthly cadence.
package recurring

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// canonicalThreshold is the token-sort similarity (0-100) a raw
// description must exceed to join an existing cluster.
const canonicalThreshold = 80

// Normalizer maps raw merchant descriptions to canonical labels using
// token-sort fuzzy matching, so "AMAZON.COM*A1B2C3" and
// "AMAZON.COM*D4E5F6" land on one label.
type Normalizer struct {
	canonical []string
}

// NewNormalizer builds the canonical list from distinct raw descriptions.
// Input order is significant: the first member of each cluster becomes
// its label, so callers must pass descriptions in first-occurrence order
// over the date-ascending window.
func NewNormalizer(descriptions []string) *Normalizer {
	n := &Normalizer{}
	seen := make(map[string]bool, len(descriptions))
	for _, raw := range descriptions {
		if seen[raw] {
			continue
		}
		seen[raw] = true

		_, best := n.bestMatch(raw)
		if best <= canonicalThreshold {
			n.canonical = append(n.canonical, raw)
		}
	}
	return n
}

// Canonical returns the canonical labels in cluster-creation order.
func (n *Normalizer) Canonical() []string {
	out := make([]string, len(n.canonical))
	copy(out, n.canonical)
	return out
}

// Normalize assigns a raw description to its nearest canonical label.
// Every input maps to some label: this is a best-match selection, not a
// threshold test. An empty canonical list returns the input unchanged.
func (n *Normalizer) Normalize(raw string) string {
	label, score := n.bestMatch(raw)
	if score < 0 {
		return raw
	}
	return label
}

// bestMatch returns the highest-scoring canonical label for raw, or
// ("", -1) when the canonical list is empty.
func (n *Normalizer) bestMatch(raw string) (string, int) {
	best := -1
	label := ""
	for _, c := range n.canonical {
		if score := fuzzy.TokenSortRatio(raw, c); score > best {
			best = score
			label = c
		}
	}
	return label, best
}
