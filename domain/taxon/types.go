// Package taxon holds the species-match vocabulary shared by the matcher
// adapter, the correction engine and the export stage.
package taxon

import "strings"

// MatchType is the matching service's confidence classification for a name
type MatchType string

const (
	MatchExact      MatchType = "EXACT"
	MatchFuzzy      MatchType = "FUZZY"
	MatchHigherRank MatchType = "HIGHERRANK"
	MatchNone       MatchType = "NONE"
)

// Matched reports whether the service found any usage for the name.
// An empty match type counts as no match.
func (m MatchType) Matched() bool {
	normalized := MatchType(strings.ToUpper(strings.TrimSpace(string(m))))
	return normalized != "" && normalized != MatchNone
}

// MatchResult is the decoded body of a species-match response
type MatchResult struct {
	UsageKey       int       `json:"usageKey,omitempty"`
	ScientificName string    `json:"scientificName,omitempty"`
	CanonicalName  string    `json:"canonicalName,omitempty"`
	Rank           string    `json:"rank,omitempty"`
	Status         string    `json:"status,omitempty"`
	Confidence     int       `json:"confidence"`
	MatchType      MatchType `json:"matchType"`
	Note           string    `json:"note,omitempty"`
	Synonym        bool      `json:"synonym"`
	Kingdom        string    `json:"kingdom,omitempty"`
	Phylum         string    `json:"phylum,omitempty"`
	Class          string    `json:"class,omitempty"`
	Order          string    `json:"order,omitempty"`
	Family         string    `json:"family,omitempty"`
	Genus          string    `json:"genus,omitempty"`
	Species        string    `json:"species,omitempty"`
}

// CorrectionRecord is the per-row outcome of a correction run. Nil pointers
// are absent values and export as empty cells.
type CorrectionRecord struct {
	CorrectedName *string `json:"corrected_name"`
	Genus         *string `json:"genus"`
	Family        *string `json:"family"`
	Status        string  `json:"status"`

	// Match is the raw service answer behind a matched record; it is not exported.
	Match *MatchResult `json:"-"`
}

// Matched reports whether the record carries a corrected name
func (r CorrectionRecord) Matched() bool {
	return r.CorrectedName != nil
}

// Cells returns the four exported values in column order
func (r CorrectionRecord) Cells() []string {
	return []string{deref(r.CorrectedName), deref(r.Genus), deref(r.Family), r.Status}
}

// Unmatched builds a record with every field absent except the status
func Unmatched(status string) CorrectionRecord {
	return CorrectionRecord{Status: status}
}

// FromMatch builds a record for a matched name. Empty strings from the
// service are recorded as absent. An empty service status falls back to the
// match type.
func FromMatch(m *MatchResult) CorrectionRecord {
	status := strings.TrimSpace(m.Status)
	if status == "" {
		status = string(m.MatchType)
	}
	return CorrectionRecord{
		CorrectedName: optional(m.ScientificName),
		Genus:         optional(m.Genus),
		Family:        optional(m.Family),
		Status:        status,
		Match:         m,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
