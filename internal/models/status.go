package models

// JobState is the lifecycle state of the background indexing job.
type JobState string

const (
	// JobIdle means no indexing job is running.
	JobIdle JobState = "idle"
	// JobProcessing means an indexing job is running.
	JobProcessing JobState = "processing"
)

// IndexStatus is a snapshot of the indexing job. While State is
// JobProcessing, 0 <= Progress <= Total holds; on completion or failure the
// status resets to {idle, 0, 0}.
type IndexStatus struct {
	State    JobState `json:"state"`
	Progress int      `json:"progress"`
	Total    int      `json:"total"`
}
