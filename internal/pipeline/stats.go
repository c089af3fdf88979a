package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int // Discovered media files.
	Skipped          int // Probed clean, no job created.
	Attempted        int // Jobs handed to the worker pool.
	Converted        int // Jobs finished and finalized.
	Failed           int // Probe, encode, or finalize failures.
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs of converted files. Positive means outputs are smaller.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// AllFailed reports whether work was attempted and none of it succeeded,
// which is the one batch outcome that exits non-zero. Failed counts probe
// and planning failures as well as pool failures, so a run where every
// file dies before a job is even built still registers here.
func (s *RunStats) AllFailed() bool {
	return s.Failed > 0 && s.Converted == 0
}
