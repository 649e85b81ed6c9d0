package importer

import "time"

// Status is the outcome of one file.
type Status string

const (
	StatusImported Status = "imported"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// FileResult records what happened to one discovered file.
type FileResult struct {
	Path   string
	Park   string
	Status Status
	// Created is true when the park row did not exist before this run.
	Created bool
	// Rows holds the child rows written per table.
	Rows  map[string]int
	Error error
}

// Summary aggregates a run.
type Summary struct {
	RunID     string
	Directory string
	DryRun    bool
	Found     int
	Attempted int
	Succeeded int
	Skipped   int
	Failed    int
	Files     []FileResult
	Duration  time.Duration
}

func (s *Summary) record(result FileResult) {
	s.Attempted++
	switch result.Status {
	case StatusImported:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.Files = append(s.Files, result)
}

// Results returns the file results with the given status.
func (s *Summary) Results(status Status) []FileResult {
	if s == nil {
		return nil
	}
	var out []FileResult
	for _, result := range s.Files {
		if result.Status == status {
			out = append(out, result)
		}
	}
	return out
}
