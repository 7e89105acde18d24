package reminders

import "strings"

// Response-quality bucketing is a business rule, not presentation:
// under-length completion responses are flagged to oversight, not
// rejected. Boundaries are inclusive: 9 words is low, 10 and 20 are
// acceptable, 21 is high.
const (
	// QualityAlertThreshold is the word count below which a completion
	// triggers a quality alert.
	QualityAlertThreshold = 10

	// acceptableCeiling is the highest word count still bucketed
	// acceptable.
	acceptableCeiling = 20
)

// Quality is the tri-state bucket for a completion response.
type Quality string

const (
	QualityLow        Quality = "low"
	QualityAcceptable Quality = "acceptable"
	QualityHigh       Quality = "high"
)

// Color maps a quality bucket onto its UI indicator color.
func (q Quality) Color() string {
	switch q {
	case QualityLow:
		return "red"
	case QualityAcceptable:
		return "yellow"
	case QualityHigh:
		return "green"
	default:
		return ""
	}
}

// WordCount counts whitespace-separated words in a response.
func WordCount(response string) int {
	return len(strings.Fields(response))
}

// BucketResponse assigns a word count to its quality bucket.
func BucketResponse(words int) Quality {
	switch {
	case words < QualityAlertThreshold:
		return QualityLow
	case words <= acceptableCeiling:
		return QualityAcceptable
	default:
		return QualityHigh
	}
}
