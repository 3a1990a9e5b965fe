package analytics

import (
	"context"
	"fmt"

	"github.com/hyperjump/omoide/internal/entity"
	"github.com/hyperjump/omoide/internal/models"
)

const summaryPerBucket = 15

// EntitySummary extracts entities from every entry and returns the most
// frequent people, places and organizations.
func (s *Service) EntitySummary(ctx context.Context) (*models.NERSummary, error) {
	entries, err := s.storage.ListEntriesChrono(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: entity summary: %w", err)
	}

	people := newCounter()
	places := newCounter()
	orgs := newCounter()
	for _, e := range entries {
		found, err := s.extractor.Extract(ctx, e.Content)
		if err != nil {
			return nil, fmt.Errorf("analytics: entity summary: %w", err)
		}
		for _, ent := range found {
			switch ent.Label {
			case entity.LabelPerson:
				people.add(ent.Text)
			case entity.LabelLocation:
				places.add(ent.Text)
			case entity.LabelOrganization:
				orgs.add(ent.Text)
			}
		}
	}

	return &models.NERSummary{
		People: people.top(summaryPerBucket),
		Places: places.top(summaryPerBucket),
		Orgs:   orgs.top(summaryPerBucket),
	}, nil
}

// SentimentTimeline scores every entry and returns one point per entry in
// chronological order.
func (s *Service) SentimentTimeline(ctx context.Context) ([]models.SentimentPoint, error) {
	entries, err := s.storage.ListEntriesChrono(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: sentiment timeline: %w", err)
	}

	points := make([]models.SentimentPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, models.SentimentPoint{
			Date:  e.Date,
			Score: s.scorer.Score(e.Content),
		})
	}
	return points, nil
}
