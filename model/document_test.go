package model

import (
	"testing"
)

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		stage    string
		terminal bool
	}{
		{StageProcessing, false},
		{StageExtracting, false},
		{StageAnalyzing, false},
		{StageDone, true},
		{StageError, true},
	}

	for _, tt := range tests {
		s := Status{Stage: tt.stage}
		if s.Terminal() != tt.terminal {
			t.Errorf("Stage %s: expected terminal=%v", tt.stage, tt.terminal)
		}
	}
}
