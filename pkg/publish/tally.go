package publish

import "fmt"

// Tally accumulates per-file outcomes across a run. It is created when the
// walk starts, mutated only by the publisher's goroutine, and reported once
// at the end.
type Tally struct {
	Succeeded int // files stored (or already present on the server)
	Failed    int // files the server rejected or the transfer lost
	Skipped   int // files and directories excluded before upload
}

// Total returns the number of files the tally accounts for.
func (t Tally) Total() int {
	return t.Succeeded + t.Failed + t.Skipped
}

// String renders the tally in the form used by the final run report.
func (t Tally) String() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped", t.Succeeded, t.Failed, t.Skipped)
}
