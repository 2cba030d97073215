package generator

import (
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultRevisionMarker is the word an editor uses to ask for a revision.
const DefaultRevisionMarker = "revise"

// Decision is the structured outcome of a review.
type Decision string

const (
	DecisionApproved      Decision = "approved"
	DecisionNeedsRevision Decision = "needs_revision"
)

// Verdict is a review outcome plus the reviewer's free text.
type Verdict struct {
	Decision Decision `json:"decision"`
	Detail   string   `json:"detail"`
}

func (v Verdict) NeedsRevision() bool { return v.Decision == DecisionNeedsRevision }

// ParseVerdict classifies a reviewer reply.
//
// A reply carrying a JSON object with a "decision" field is taken at its word. Any other
// reply needs revision iff it contains marker, compared case-insensitively. A reply that
// never uses the marker is approved, whatever else it says.
func ParseVerdict(text, marker string) Verdict {
	detail := strings.TrimSpace(text)
	if d, ok := jsonDecision(detail); ok {
		return Verdict{Decision: d, Detail: detail}
	}
	if marker != "" && strings.Contains(strings.ToLower(detail), strings.ToLower(marker)) {
		return Verdict{Decision: DecisionNeedsRevision, Detail: detail}
	}
	return Verdict{Decision: DecisionApproved, Detail: detail}
}

func jsonDecision(text string) (Decision, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return "", false
	}
	d := gjson.Get(raw, "decision")
	if !d.Exists() {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(d.String())) {
	case "approve", "approved", "accept", "accepted":
		return DecisionApproved, true
	case "revise", "revision", "needs_revision", "reject", "rejected":
		return DecisionNeedsRevision, true
	default:
		return "", false
	}
}
