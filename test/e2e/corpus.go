// Package e2e provides end-to-end tests over a seeded journal corpus.
package e2e

import (
	"fmt"
	"time"

	"github.com/hyperjump/omoide/internal/models"
)

// JournalDay is one dated entry in the corpus.
type JournalDay struct {
	Date    string
	Content string
	Tags    string
}

// QueryTestCase defines a query and the entry date(s) that must appear in
// retrieval results. At least one of ExpectedDates must be present.
type QueryTestCase struct {
	Query         string
	ExpectedDates []string
	Description   string
}

// Corpus holds journal days and query test cases for end-to-end tests.
type Corpus struct {
	Days         []JournalDay
	TestCases    []QueryTestCase
	TotalDays    int
	TotalQueries int
}

// BuildCorpus returns a corpus of journal entries with varied content and
// query test cases. Each day has a distinctive activity phrase so queries can
// assert the right entry is retrieved.
func BuildCorpus() *Corpus {
	days := buildDays()
	cases := buildQueryTestCases(days)
	return &Corpus{
		Days:         days,
		TestCases:    cases,
		TotalDays:    len(days),
		TotalQueries: len(cases),
	}
}

func buildDays() []JournalDay {
	activities := []struct {
		phrase  string
		content string
		tags    string
	}{
		{"hiked the Matterhorn trail", "Woke up before dawn and hiked the Matterhorn trail with Ben. The Matterhorn trail was icy near the summit but the view was worth every step.", "hiking,travel"},
		{"coffee with Alice downtown", "Had coffee with Alice downtown at the new roastery. Coffee with Alice always turns into a two-hour conversation about her startup.", "friends,coffee"},
		{"piano lesson with Mr. Tanaka", "Third piano lesson with Mr. Tanaka today. The piano lesson focused on the left-hand voicing in the Chopin nocturne.", "music"},
		{"sourdough starter finally rose", "My sourdough starter finally rose after a week of feeding it. Baked the first loaf and the sourdough crumb was open and tangy.", "baking"},
		{"job interview at Meridian Labs", "Nervous all morning before the job interview at Meridian Labs. The interview panel asked about distributed systems and I think it went well.", "work"},
		{"rain storm flooded the basement", "A rain storm flooded the basement overnight. Spent the whole day hauling water out of the flooded basement with Dad.", "home"},
		{"finished reading Anna Karenina", "Finally finished reading Anna Karenina on the porch. Eight hundred pages and the ending of Anna Karenina still caught me off guard.", "books"},
		{"adopted a rescue dog named Miso", "We adopted a rescue dog named Miso from the shelter. Miso the rescue dog spent the evening hiding under the kitchen table.", "pets"},
		{"cycled to the lighthouse with Priya", "Cycled to the lighthouse with Priya along the coast road. The lighthouse ride is forty kilometers and my legs are wrecked.", "cycling,friends"},
		{"planted tomatoes in the garden", "Planted tomatoes in the garden before the frost window closed. Six tomato seedlings in the raised bed, fingers crossed.", "garden"},
		{"grandma's dumpling recipe", "Spent the afternoon learning grandma's dumpling recipe. She refuses to measure anything so the dumpling recipe is mostly feel.", "family,cooking"},
		{"night market in Taipei", "Wandered the night market in Taipei for hours. The Taipei night market smelled of stinky tofu and grilled squid.", "travel,food"},
		{"sprained my ankle at futsal", "Sprained my ankle at futsal chasing a loose ball. The ankle swelled up fast so the futsal season might be over for me.", "sport,health"},
		{"quit my job at the agency", "Told my manager I quit my job at the agency. Quitting the agency was terrifying and also the lightest I have felt in months.", "work"},
		{"stargazing at the observatory", "Went stargazing at the observatory with the astronomy club. Saw Saturn's rings through the observatory telescope for the first time.", "astronomy"},
		{"wisdom tooth extraction", "Wisdom tooth extraction this morning. The extraction itself was fine but the anesthetic wearing off was not.", "health"},
		{"built a bookshelf from oak", "Built a bookshelf from oak planks in the garage. The oak bookshelf wobbles slightly but I am absurdly proud of it.", "woodworking"},
		{"marathon training long run", "Marathon training long run, twenty-eight kilometers in the rain. The long run felt endless but the pace held steady.", "running"},
		{"pottery class glazing day", "Glazing day at pottery class. My lopsided pottery bowl came out of the kiln a deep cobalt blue.", "pottery"},
		{"ferry to the island cabin", "Took the ferry to the island cabin for the weekend. The cabin ferry was nearly empty and the sea was flat as glass.", "travel"},
		{"Carol's surprise birthday party", "Organized Carol's surprise birthday party at the cafe. Carol cried when everyone jumped out, best birthday party in years.", "friends"},
		{"first attempt at oil painting", "First attempt at oil painting in the spare room. The oil painting is supposed to be the harbor; it looks like soup.", "art"},
		{"power outage during the heatwave", "Power outage during the heatwave, six hours without a fan. Read by candlelight until the heatwave outage ended.", "home"},
		{"volunteered at the food bank", "Volunteered at the food bank with the neighborhood group. Sorted crates at the food bank until my shoulders ached.", "volunteering"},
		{"learned to roll fresh pasta", "Learned to roll fresh pasta from a video. The fresh pasta stuck to everything but tasted like a revelation.", "cooking"},
		{"fender bender on the highway", "Small fender bender on the highway ramp. Nobody hurt, but the fender bender means a week of insurance calls.", "car"},
		{"meteor shower from the rooftop", "Watched the meteor shower from the rooftop with Sam. Counted nineteen meteors before the clouds rolled in.", "astronomy,friends"},
		{"signed the apartment lease", "Signed the apartment lease for the place near the river. The new apartment has terrible water pressure and a perfect reading nook.", "home"},
		{"chess tournament second round", "Lost the chess tournament second round on time. The tournament clock is my real opponent, not the other player.", "chess"},
		{"picked wild blackberries", "Picked wild blackberries along the canal path. Came home with two kilos of blackberries and purple hands.", "foraging"},
	}

	days := make([]JournalDay, 0, len(activities))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range activities {
		days = append(days, JournalDay{
			Date:    start.AddDate(0, 0, i).Format("2006-01-02"),
			Content: a.content,
			Tags:    a.tags,
		})
	}
	return days
}

// buildQueryTestCases derives one query per sampled day from its activity
// phrase, so retrieval must surface that day.
func buildQueryTestCases(days []JournalDay) []QueryTestCase {
	queries := []struct {
		query string
		day   int
	}{
		{"hiked the Matterhorn trail", 0},
		{"coffee with Alice downtown", 1},
		{"piano lesson with Mr. Tanaka", 2},
		{"sourdough starter finally rose", 3},
		{"rain storm flooded the basement", 5},
		{"adopted a rescue dog named Miso", 7},
		{"cycled to the lighthouse with Priya", 8},
		{"night market in Taipei", 11},
		{"stargazing at the observatory", 14},
		{"marathon training long run", 17},
		{"Carol's surprise birthday party", 20},
		{"meteor shower from the rooftop", 26},
		{"picked wild blackberries", 29},
	}
	cases := make([]QueryTestCase, 0, len(queries))
	for _, q := range queries {
		cases = append(cases, QueryTestCase{
			Query:         q.query,
			ExpectedDates: []string{days[q.day].Date},
			Description:   fmt.Sprintf("query %q finds %s", q.query, days[q.day].Date),
		})
	}
	return cases
}

// ToEntries converts the corpus days to storage entries.
func (c *Corpus) ToEntries() []*models.Entry {
	entries := make([]*models.Entry, 0, len(c.Days))
	for i, d := range c.Days {
		date, _ := time.Parse("2006-01-02", d.Date)
		entries = append(entries, &models.Entry{
			ID:        fmt.Sprintf("entry-%03d", i+1),
			Date:      date,
			Content:   d.Content,
			Tags:      d.Tags,
			CreatedAt: time.Now(),
		})
	}
	return entries
}
