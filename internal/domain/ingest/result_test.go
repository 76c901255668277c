package ingest

import (
	"errors"
	"testing"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		NewInserted("a"),
		NewInserted("b"),
		NewSkipped("c"),
		NewFailed("d", errors.New("boom")),
	}

	s := Summarize(results)
	if s.Inserted != 2 || s.Skipped != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Total() != 4 {
		t.Errorf("expected total 4, got %d", s.Total())
	}
}

func TestResult_Accessors(t *testing.T) {
	err := errors.New("fetch failed")
	r := NewFailed("Hair Oil", err)

	if r.Title() != "Hair Oil" {
		t.Errorf("unexpected title %q", r.Title())
	}
	if r.Status() != StatusFailed {
		t.Errorf("unexpected status %q", r.Status())
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("unexpected err %v", r.Err())
	}

	if ok := NewInserted("x"); ok.Err() != nil || ok.Status() != StatusInserted {
		t.Errorf("unexpected inserted result: %+v", ok)
	}
}
