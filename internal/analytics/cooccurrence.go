package analytics

import (
	"context"
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/hyperjump/omoide/internal/models"
)

// CoOccurrence counts, for every non-empty subset of the given entities, how
// many entries mention all members of the subset. Entity matching is a
// case-sensitive substring test against entry content. Subsets with a zero
// count are omitted.
func (s *Service) CoOccurrence(ctx context.Context, entities []string) ([]models.EntitySet, error) {
	names := dedupeNonEmpty(entities)
	if len(names) < 2 || len(names) > 4 {
		return nil, ErrEntityCount
	}

	entries, err := s.storage.ListEntriesChrono(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: co-occurrence: %w", err)
	}

	// presence[i] is a bitmask of which query entities entry i mentions.
	presence := make([]uint, 0, len(entries))
	for _, entry := range entries {
		var mask uint
		for i, name := range names {
			if strings.Contains(entry.Content, name) {
				mask |= 1 << i
			}
		}
		if mask != 0 {
			presence = append(presence, mask)
		}
	}

	n := len(names)
	sets := make([]models.EntitySet, 0, 1<<n-1)
	for subset := uint(1); subset < 1<<n; subset++ {
		count := 0
		for _, mask := range presence {
			if mask&subset == subset {
				count++
			}
		}
		if count == 0 {
			continue
		}
		key := make([]string, 0, bits.OnesCount(subset))
		for i := 0; i < n; i++ {
			if subset&(1<<i) != 0 {
				key = append(key, names[i])
			}
		}
		sets = append(sets, models.EntitySet{Key: key, Data: count})
	}

	// Singles first, then pairs, and so on; within a size, query order.
	sort.SliceStable(sets, func(i, j int) bool {
		return len(sets[i].Key) < len(sets[j].Key)
	})
	return sets, nil
}

// dedupeNonEmpty trims the names and drops blanks and exact duplicates,
// preserving first-seen order.
func dedupeNonEmpty(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
