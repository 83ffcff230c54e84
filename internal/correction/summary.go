package correction

import (
	"sort"

	"github.com/montanaflynn/stats"

	"namecorrector/domain/taxon"
)

// StatusCount is the number of rows sharing one status label
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary describes the outcome of a correction run
type Summary struct {
	Total            int           `json:"total"`
	Matched          int           `json:"matched"`
	Statuses         []StatusCount `json:"statuses"`
	MeanConfidence   float64       `json:"mean_confidence"`
	MedianConfidence float64       `json:"median_confidence"`
	HasConfidence    bool          `json:"has_confidence"`
}

// Summarize counts rows per status (most frequent first) and computes the
// mean and median service confidence of matched rows
func Summarize(records []taxon.CorrectionRecord) Summary {
	summary := Summary{Total: len(records)}

	counts := make(map[string]int)
	confidences := make([]float64, 0, len(records))
	for _, rec := range records {
		counts[rec.Status]++
		if !rec.Matched() {
			continue
		}
		summary.Matched++
		if rec.Match != nil {
			confidences = append(confidences, float64(rec.Match.Confidence))
		}
	}

	for status, n := range counts {
		summary.Statuses = append(summary.Statuses, StatusCount{Status: status, Count: n})
	}
	sort.Slice(summary.Statuses, func(i, j int) bool {
		if summary.Statuses[i].Count != summary.Statuses[j].Count {
			return summary.Statuses[i].Count > summary.Statuses[j].Count
		}
		return summary.Statuses[i].Status < summary.Statuses[j].Status
	})

	if len(confidences) == 0 {
		return summary
	}
	mean, err := stats.Mean(confidences)
	if err != nil {
		return summary
	}
	median, err := stats.Median(confidences)
	if err != nil {
		return summary
	}
	summary.MeanConfidence, _ = stats.Round(mean, 1)
	summary.MedianConfidence = median
	summary.HasConfidence = true
	return summary
}

// MatchRate returns the matched share in [0, 1]
func (s Summary) MatchRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total)
}
