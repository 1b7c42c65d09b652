package entity

import "net/http"

// ScanResult is what the entry point hands back to its caller.
type ScanResult struct {
	StatusCode int     `json:"statusCode"`
	Body       Report  `json:"body"`
	Summary    Summary `json:"-"`
	Notified   bool    `json:"-"`
}

// NewScanResult pairs a report with the fixed success status.
func NewScanResult(report Report, summary Summary, notified bool) ScanResult {
	return ScanResult{
		StatusCode: http.StatusOK,
		Body:       report,
		Summary:    summary,
		Notified:   notified,
	}
}

// KindSummary counts what a scanner looked at for one kind.
type KindSummary struct {
	Kind         ResourceKind `json:"-"`
	Label        string       `json:"label"`
	Examined     int          `json:"examined"`
	Idle         int          `json:"idle"`
	Inconclusive []string     `json:"inconclusive,omitempty"`
}

// Summary holds per-kind scan statistics in report order.
type Summary struct {
	AccountID string        `json:"account_id,omitempty"`
	Regions   []string      `json:"regions"`
	Kinds     []KindSummary `json:"kinds"`
}

// Inconclusive returns the total count of resources whose metric lookup failed.
func (s Summary) Inconclusive() int {
	n := 0
	for _, k := range s.Kinds {
		n += len(k.Inconclusive)
	}
	return n
}
