package service

import (
	"strings"
	"testing"
)

func TestClassifyDocumentNDA(t *testing.T) {
	// "confidential" x3 and "non-disclosure" x1 score 4 for NDA while every
	// other label stays at zero.
	text := "This Confidential agreement is a non-disclosure pact. Confidential material stays confidential."

	if got := ClassifyDocument(text); got != "NDA" {
		t.Errorf("Expected NDA, got %s", got)
	}
}

func TestClassifyDocumentUnknown(t *testing.T) {
	if got := ClassifyDocument("the quick brown fox jumps over the lazy dog"); got != LabelUnknown {
		t.Errorf("Expected Unknown for zero matches, got %s", got)
	}
	if got := ClassifyDocument(""); got != LabelUnknown {
		t.Errorf("Expected Unknown for empty text, got %s", got)
	}
}

func TestClassifyDocumentDeterministic(t *testing.T) {
	text := "employment agreement between employer and employee regarding salary"
	first := ClassifyDocument(text)
	for i := 0; i < 10; i++ {
		if got := ClassifyDocument(text); got != first {
			t.Fatalf("Classification not deterministic: %s vs %s", first, got)
		}
	}
	if first != "Employment Agreement" {
		t.Errorf("Expected Employment Agreement, got %s", first)
	}
}

func TestClassifyDocumentTieKeepsFirstLabel(t *testing.T) {
	// One NDA keyword and one lease keyword: a tie keeps the earlier table
	// entry.
	text := "confidential lease"
	if got := ClassifyDocument(text); got != "NDA" {
		t.Errorf("Expected tie to resolve to NDA, got %s", got)
	}
}

func TestClassifyDocumentCaseInsensitive(t *testing.T) {
	lower := ClassifyDocument("tenant landlord lease premises")
	upper := ClassifyDocument("TENANT LANDLORD LEASE PREMISES")
	if lower != upper || lower != "Lease Agreement" {
		t.Errorf("Expected case-insensitive Lease Agreement, got %s / %s", lower, upper)
	}
}

func TestRiskScoreExample(t *testing.T) {
	// "liability" x2 + "termination" x1 = 3 occurrences over a ceiling of
	// 12 rounds to 25.
	text := "Liability is limited. No liability for delays. Early termination is prohibited."
	if got := RiskScore(text); got != 25 {
		t.Errorf("Expected risk score 25, got %d", got)
	}
}

func TestRiskScoreZero(t *testing.T) {
	if got := RiskScore("a perfectly harmless document"); got != 0 {
		t.Errorf("Expected 0 for no risk keywords, got %d", got)
	}
}

func TestRiskScoreSaturation(t *testing.T) {
	var sb strings.Builder
	for _, kw := range riskKeywords {
		for i := 0; i < 3; i++ {
			sb.WriteString(kw + " ")
		}
	}

	if got := RiskScore(sb.String()); got != 100 {
		t.Errorf("Expected saturated score 100, got %d", got)
	}

	// Beyond the ceiling the score stays clamped at 100.
	if got := RiskScore(sb.String() + sb.String()); got != 100 {
		t.Errorf("Expected clamped score 100, got %d", got)
	}
}

func TestRiskScoreBounds(t *testing.T) {
	texts := []string{
		"",
		"liability",
		"damages damages damages damages damages damages",
		strings.Repeat("indemnification liability damages termination ", 50),
	}
	for _, text := range texts {
		got := RiskScore(text)
		if got < 0 || got > 100 {
			t.Errorf("Risk score out of bounds for %q: %d", text, got)
		}
	}
}

func TestRiskScoreMonotonic(t *testing.T) {
	prev := 0
	for i := 1; i <= 12; i++ {
		score := RiskScore(strings.Repeat("liability ", i))
		if score < prev {
			t.Errorf("Score decreased from %d to %d at %d occurrences", prev, score, i)
		}
		prev = score
	}
}
