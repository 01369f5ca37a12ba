package engine

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Progress counts completed workers against the fixed total of non-ignored
// tables. It is owned by the scheduler; workers never touch it directly.
type Progress struct {
	Processed int
	Total     int
}

// Percent returns processed/total rounded to the nearest integer. A zero
// total reports zero; the scheduler short-circuits before emitting events in
// that case.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Processed) / float64(p.Total) * 100))
}

// ReportProgress emits the human-readable progress line, one per completed
// outcome, success or failure alike.
func ReportProgress(p Progress) {
	log.Infof("Progress %d%% (%d/%d)", p.Percent(), p.Processed, p.Total)
}
