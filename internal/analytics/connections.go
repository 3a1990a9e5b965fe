package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/omoide/internal/models"
)

const maxConnections = 10

// CommonConnections finds the entities that most often appear in entries
// mentioning both entity1 and entity2. The pair itself is excluded from the
// results case-insensitively; asking about an identical pair yields an empty
// result, not an error. Entity extraction runs only on the entries that
// mention both, never the whole corpus.
func (s *Service) CommonConnections(ctx context.Context, entity1, entity2 string) (*models.CommonConnections, error) {
	entity1 = strings.TrimSpace(entity1)
	entity2 = strings.TrimSpace(entity2)
	if entity1 == "" || entity2 == "" {
		return nil, ErrMissingEntity
	}

	result := &models.CommonConnections{
		Entity1:        entity1,
		Entity2:        entity2,
		CommonEntities: []models.EntityCount{},
	}
	if strings.EqualFold(entity1, entity2) {
		return result, nil
	}

	entries, err := s.storage.ListEntriesChrono(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: common connections: %w", err)
	}

	var shared []string
	for _, entry := range entries {
		if strings.Contains(entry.Content, entity1) && strings.Contains(entry.Content, entity2) {
			shared = append(shared, entry.Content)
		}
	}

	if len(shared) == 0 {
		return result, nil
	}

	found, err := s.extractor.Extract(ctx, strings.Join(shared, "\n"))
	if err != nil {
		return nil, fmt.Errorf("analytics: common connections: %w", err)
	}

	counts := newCounter()
	for _, ent := range found {
		if strings.EqualFold(ent.Text, entity1) || strings.EqualFold(ent.Text, entity2) {
			continue
		}
		counts.add(ent.Text)
	}
	result.CommonEntities = counts.top(maxConnections)
	return result, nil
}

// counter tallies entity mentions, remembering first-seen order for stable
// tie-breaking.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(text string) {
	if _, ok := c.counts[text]; !ok {
		c.order = append(c.order, text)
	}
	c.counts[text]++
}

// top returns up to limit entities by descending count; equal counts keep
// first-seen order.
func (c *counter) top(limit int) []models.EntityCount {
	ranked := make([]models.EntityCount, 0, len(c.order))
	for _, text := range c.order {
		ranked = append(ranked, models.EntityCount{Text: text, Count: c.counts[text]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
