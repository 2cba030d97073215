package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want Decision
	}{
		{"plain approval", "Well written. Final decision: approve.", DecisionApproved},
		{"marker lower case", "Several factual gaps. Decision: revise.", DecisionNeedsRevision},
		{"marker upper case", "DECISION: REVISE THE INTRO", DecisionNeedsRevision},
		{"marker inside a longer word", "The text must be revised before publishing.", DecisionNeedsRevision},
		{"rejection without marker", "Final decision: reject.", DecisionApproved},
		{"json approve wins over marker text", `{"decision":"approve","summary":"no need to revise"}`, DecisionApproved},
		{"json revise", "Result:\n{\"decision\": \"needs_revision\"}", DecisionNeedsRevision},
		{"json without decision falls back", `{"score": 3} please revise`, DecisionNeedsRevision},
		{"unknown json decision falls back", `{"decision":"maybe"}`, DecisionApproved},
		{"empty", "", DecisionApproved},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseVerdict(tc.text, DefaultRevisionMarker)
			assert.Equal(t, tc.want, got.Decision)
		})
	}
}

func TestParseVerdict_KeepsDetailAndHonoursCustomMarker(t *testing.T) {
	v := ParseVerdict("  Needs rework: доработать  ", "ДОРАБОТАТЬ")
	assert.True(t, v.NeedsRevision())
	assert.Equal(t, "Needs rework: доработать", v.Detail)

	v = ParseVerdict("please revise", "")
	assert.False(t, v.NeedsRevision())
}
