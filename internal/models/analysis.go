package models

import "time"

// ScoredEntry is a single semantic search hit.
type ScoredEntry struct {
	Entry *Entry  `json:"entry"`
	Score float64 `json:"score"`
}

// EntityCount is an entity name with its occurrence count.
type EntityCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// EntitySet is one non-empty subset of a co-occurrence request together with
// the number of entries containing every member of the subset.
type EntitySet struct {
	Key  []string `json:"key"`
	Data int      `json:"data"`
}

// CommonConnections holds the entities that most often appear alongside a
// pair of query entities.
type CommonConnections struct {
	Entity1        string        `json:"entity1"`
	Entity2        string        `json:"entity2"`
	CommonEntities []EntityCount `json:"common_entities"`
}

// NERSummary buckets the most frequent entities in the corpus by label.
type NERSummary struct {
	People []EntityCount `json:"people"`
	Places []EntityCount `json:"places"`
	Orgs   []EntityCount `json:"orgs"`
}

// SentimentPoint is one entry's sentiment score on its date.
type SentimentPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Answer is the twin's reply to a question, with the memories it drew on.
type Answer struct {
	Text        string        `json:"text"`
	MemoryCount int           `json:"memory_count"`
	Sources     []ScoredEntry `json:"sources,omitempty"`
}
