package e2e

import "testing"

func TestBuildCorpus(t *testing.T) {
	c := BuildCorpus()
	if c.TotalDays < 20 {
		t.Fatalf("corpus has %d days, want at least 20", c.TotalDays)
	}
	if c.TotalQueries == 0 {
		t.Fatal("corpus has no query test cases")
	}

	seen := make(map[string]bool)
	for _, d := range c.Days {
		if d.Date == "" || d.Content == "" {
			t.Fatalf("day with empty date or content: %+v", d)
		}
		if seen[d.Date] {
			t.Fatalf("duplicate date %s", d.Date)
		}
		seen[d.Date] = true
	}

	for _, tc := range c.TestCases {
		if tc.Query == "" || len(tc.ExpectedDates) == 0 {
			t.Fatalf("incomplete test case: %+v", tc)
		}
		for _, date := range tc.ExpectedDates {
			if !seen[date] {
				t.Fatalf("test case %q expects unknown date %s", tc.Query, date)
			}
		}
	}
}

func TestToEntries(t *testing.T) {
	c := BuildCorpus()
	entries := c.ToEntries()
	if len(entries) != c.TotalDays {
		t.Fatalf("got %d entries, want %d", len(entries), c.TotalDays)
	}
	ids := make(map[string]bool)
	for i, e := range entries {
		if e.ID == "" || ids[e.ID] {
			t.Fatalf("entry %d has missing or duplicate id %q", i, e.ID)
		}
		ids[e.ID] = true
		if e.Date.IsZero() {
			t.Fatalf("entry %s has zero date", e.ID)
		}
	}
}
