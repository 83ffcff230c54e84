package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"namecorrector/domain/taxon"
)

func TestSummarize(t *testing.T) {
	records := []taxon.CorrectionRecord{
		taxon.FromMatch(&taxon.MatchResult{ScientificName: "A a", Status: "ACCEPTED", MatchType: taxon.MatchExact, Confidence: 99}),
		taxon.FromMatch(&taxon.MatchResult{ScientificName: "B b", Status: "SYNONYM", MatchType: taxon.MatchFuzzy, Confidence: 80}),
		taxon.FromMatch(&taxon.MatchResult{ScientificName: "C c", Status: "ACCEPTED", MatchType: taxon.MatchExact, Confidence: 96}),
		taxon.Unmatched("not found"),
		taxon.Unmatched("Error 503"),
	}

	s := Summarize(records)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Matched)
	assert.Equal(t, []StatusCount{
		{Status: "ACCEPTED", Count: 2},
		{Status: "Error 503", Count: 1},
		{Status: "SYNONYM", Count: 1},
		{Status: "not found", Count: 1},
	}, s.Statuses)
	assert.True(t, s.HasConfidence)
	assert.InDelta(t, 91.7, s.MeanConfidence, 1e-9)
	assert.Equal(t, 96.0, s.MedianConfidence)
	assert.InDelta(t, 0.6, s.MatchRate(), 1e-9)
}

func TestSummarizeNoMatches(t *testing.T) {
	s := Summarize([]taxon.CorrectionRecord{taxon.Unmatched("not found")})

	assert.Equal(t, 0, s.Matched)
	assert.False(t, s.HasConfidence)
	assert.Zero(t, s.MeanConfidence)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Zero(t, empty.MatchRate())
}
