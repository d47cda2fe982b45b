// Package reconcile maps country names from the border vocabulary onto the
// economic dataset's vocabulary.
package reconcile

import (
	"sort"
	"strings"
)

// aliases maps curated geographic name variants to economic dataset names.
// An alias is honored only when its target is actually present in the
// loaded dataset.
var aliases = map[string]string{
	"United States of America":   "United States",
	"Russian Federation":         "Russian Federation",
	"Deutschland":                "Germany",
	"España":                     "Spain",
	"República Argentina":        "Argentina",
	"Republic of India":          "India",
	"People's Republic of China": "China",
}

// Resolver resolves country names against the distinct-name set of a loaded
// economic dataset. Matching runs in three passes: exact, alias, then
// case-insensitive substring.
type Resolver struct {
	set map[string]struct{}

	// names holds the candidate set ordered shortest-first, then
	// lexicographic, so substring matching always prefers the tightest
	// candidate and resolves ties deterministically.
	names []string
}

// NewResolver builds a resolver over the distinct country names present in
// the economic dataset.
func NewResolver(names []string) *Resolver {
	set := make(map[string]struct{}, len(names))
	ordered := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := set[n]; ok {
			continue
		}
		set[n] = struct{}{}
		ordered = append(ordered, n)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) < len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	return &Resolver{set: set, names: ordered}
}

// Resolve maps a border-record country name to an economic dataset name.
// First match wins: exact, then alias (if the target is in the set), then
// substring either direction ignoring case.
func (r *Resolver) Resolve(name string) (string, bool) {
	if _, ok := r.set[name]; ok {
		return name, true
	}

	if target, ok := aliases[name]; ok {
		if _, present := r.set[target]; present {
			return target, true
		}
	}

	lower := strings.ToLower(name)
	for _, candidate := range r.names {
		cl := strings.ToLower(candidate)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return candidate, true
		}
	}

	return "", false
}

// Candidates returns every substring match for a name in resolver order.
// Used by the diagnostics command to surface near-misses.
func (r *Resolver) Candidates(name string) []string {
	lower := strings.ToLower(name)
	var out []string
	for _, candidate := range r.names {
		cl := strings.ToLower(candidate)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			out = append(out, candidate)
		}
	}
	return out
}
