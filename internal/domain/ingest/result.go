// Package ingest holds the per-item outcome types for catalog ingestion runs.
package ingest

// ItemStatus is the processing outcome of a single catalog candidate.
type ItemStatus string

// Candidate status values.
const (
	StatusInserted ItemStatus = "inserted"
	StatusSkipped  ItemStatus = "skipped" // duplicate title, already in the catalog
	StatusFailed   ItemStatus = "failed"
)

// Result is the outcome of processing one catalog candidate.
type Result struct {
	title  string
	status ItemStatus
	err    error
}

// NewInserted creates a successful candidate result.
func NewInserted(title string) Result { return Result{title: title, status: StatusInserted} }

// NewSkipped creates a duplicate-skip candidate result.
func NewSkipped(title string) Result { return Result{title: title, status: StatusSkipped} }

// NewFailed creates a failed candidate result.
func NewFailed(title string, err error) Result {
	return Result{title: title, status: StatusFailed, err: err}
}

// Title returns the candidate title.
func (r Result) Title() string { return r.title }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary tallies the outcomes of an ingestion run.
type Summary struct {
	Inserted int
	Skipped  int
	Failed   int
}

// Summarize folds per-item results into run totals.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status() {
		case StatusInserted:
			s.Inserted++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of processed candidates.
func (s Summary) Total() int { return s.Inserted + s.Skipped + s.Failed }
