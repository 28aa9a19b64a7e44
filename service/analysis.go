package service

import (
	"math"
	"strings"
)

// LabelUnknown is returned when no classification keyword matches at all.
const LabelUnknown = "Unknown"

// labelKeywords maps each document type to the keywords that vote for it.
// Order matters: ties keep the earliest entry.
var labelKeywords = []struct {
	label    string
	keywords []string
}{
	{"NDA", []string{"non-disclosure", "confidential", "proprietary information", "trade secret"}},
	{"Employment Agreement", []string{"employment", "employee", "salary", "probation", "at-will"}},
	{"Lease Agreement", []string{"lease", "landlord", "tenant", "premises", "rent"}},
	{"Service Agreement", []string{"services", "statement of work", "deliverables", "service provider"}},
	{"Purchase Agreement", []string{"purchase", "buyer", "seller", "goods", "delivery"}},
}

// riskKeywords drive the risk score. Each keyword saturates at 3
// occurrences, so the normalizing ceiling is len(riskKeywords)*3.
var riskKeywords = []string{"indemnification", "liability", "damages", "termination"}

// ClassifyDocument labels text by case-insensitive keyword occurrence
// counts. The strictly highest-scoring label wins; if every label scores
// zero the text is Unknown. Deterministic, no side effects.
func ClassifyDocument(text string) string {
	lower := strings.ToLower(text)

	best := LabelUnknown
	bestScore := 0
	for _, entry := range labelKeywords {
		score := 0
		for _, kw := range entry.keywords {
			score += strings.Count(lower, kw)
		}
		if score > bestScore {
			best = entry.label
			bestScore = score
		}
	}
	return best
}

// RiskScore maps text to [0,100] by risk-keyword density: total occurrences
// over a ceiling of three per keyword, scaled to 100 and clamped.
func RiskScore(text string) int {
	lower := strings.ToLower(text)

	total := 0
	for _, kw := range riskKeywords {
		total += strings.Count(lower, kw)
	}

	ceiling := len(riskKeywords) * 3
	score := int(math.Round(float64(total) / float64(ceiling) * 100))
	if score > 100 {
		score = 100
	}
	return score
}
