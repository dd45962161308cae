package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

const maxSuggestions = 3

// suggestNames returns binding names close to name: in-order character
// matches first, then names within a small edit distance.
func suggestNames(name string, names []string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] && len(out) < maxSuggestions {
			seen[s] = true
			out = append(out, s)
		}
	}

	ranks := fuzzy.RankFindFold(name, names)
	sort.Sort(ranks)
	for _, r := range ranks {
		add(r.Target)
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	for _, n := range names {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(n))
		if d <= 2 {
			nearby = append(nearby, near{n, d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, c := range nearby {
		add(c.name)
	}
	return out
}

// withSuggestions adds a "did you mean" hint to unknown binding errors.
func withSuggestions(err error, name string, bindings models.Bindings) error {
	if !errors.Is(err, toggle.ErrUnknownBinding) {
		return err
	}
	s := suggestNames(name, bindings.Names())
	if len(s) == 0 {
		return err
	}
	return fmt.Errorf("%w\n\nDid you mean %s?", err, strings.Join(quoteAll(s), " or "))
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
