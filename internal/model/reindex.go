package model

// RunMode selects the reindex execution strategy.
type RunMode string

const (
	// RunModeBatch submits documents through the bulk pipeline.
	RunModeBatch RunMode = "BATCH"
	// RunModeStream issues one synchronous upsert per document.
	RunModeStream RunMode = "STREAM"
)

// IsValid reports whether the run mode is a known value.
func (m RunMode) IsValid() bool {
	return m == RunModeBatch || m == RunModeStream
}

// JobStatus is the reindex job state machine.
//
// STARTING -> ACTIVE -> {ACTIVE, ACTIVEWITHERROR} per unit of work. Any
// write or transform failure sets ACTIVEWITHERROR but never aborts the run.
// There is no distinct completed state; completion is inferred from EndTime
// being set.
type JobStatus string

const (
	JobStatusStarting        JobStatus = "STARTING"
	JobStatusActive          JobStatus = "ACTIVE"
	JobStatusActiveWithError JobStatus = "ACTIVEWITHERROR"
)

// Stats holds the document counters for a reindex run.
type Stats struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// FailureDetails records the most recent failure observed by a run.
type FailureDetails struct {
	Context          string `json:"context,omitempty"`
	LastFailedAt     int64  `json:"lastFailedAt,omitempty"`
	LastFailedReason string `json:"lastFailedReason,omitempty"`
}

// JobRecord is the durable progress/failure snapshot of a reindex run.
// Timestamp doubles as the optimistic concurrency token: every write must
// present the timestamp it last read.
type JobRecord struct {
	Status         JobStatus       `json:"status"`
	Timestamp      int64           `json:"timestamp"`
	StartTime      int64           `json:"startTime,omitempty"`
	EndTime        int64           `json:"endTime,omitempty"`
	Stats          Stats           `json:"stats"`
	Entities       []string        `json:"entities,omitempty"`
	FailureDetails *FailureDetails `json:"failureDetails,omitempty"`
}
