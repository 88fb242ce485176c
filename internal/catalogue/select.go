package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern is returned for a malformed glob pattern.
var ErrInvalidPattern = errors.New("invalid template pattern")

// isPattern reports whether s contains glob metacharacters.
func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Select resolves requested IDs and glob patterns against the catalogue.
//
// Plain IDs are kept as given, even when unknown, so the caller can report
// them. Patterns expand to matching IDs in catalogue order; patterns that
// match nothing are returned in unmatched. Duplicates are dropped, keeping
// the first occurrence. With no requests, every catalogue ID is selected.
func Select(cat Catalogue, requests []string) (ids, unmatched []string, err error) {
	all := cat.IDs()
	if len(requests) == 0 {
		return all, nil, nil
	}

	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, req := range requests {
		if !isPattern(req) {
			add(req)
			continue
		}

		if !doublestar.ValidatePattern(req) {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidPattern, req)
		}

		matched := 0
		for _, id := range all {
			ok, err := doublestar.Match(req, id)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, req, err)
			}
			if ok {
				add(id)
				matched++
			}
		}
		if matched == 0 {
			unmatched = append(unmatched, req)
		}
	}

	return ids, unmatched, nil
}
