package report

import "github.com/fastsecret/fastsecret/internal/types"

// Counts tallies findings per severity.
type Counts struct {
	High, Med, Low int
}

func Count(findings []types.Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Severity.OrDefault() {
		case types.SevHigh:
			c.High++
		case types.SevMed:
			c.Med++
		default:
			c.Low++
		}
	}
	return c
}

// ShouldFail reports whether any finding is at or above threshold. A zero
// threshold matches every finding.
func ShouldFail(findings []types.Finding, threshold types.Severity) bool {
	if threshold == 0 {
		threshold = types.SevLow
	}
	for _, f := range findings {
		if f.Severity.OrDefault() >= threshold {
			return true
		}
	}
	return false
}
