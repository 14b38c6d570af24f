package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		want bool
	}{
		{"forward one stage", JobStatusQueued, JobStatusUploading, true},
		{"forward mid-pipeline", JobStatusAnalyzing, JobStatusReconstructing, true},
		{"into completed", JobStatusMetadataExtracted, JobStatusCompleted, true},
		{"skip a stage", JobStatusQueued, JobStatusStarted, false},
		{"backward", JobStatusAnalyzing, JobStatusStarted, false},
		{"self transition", JobStatusStarted, JobStatusStarted, false},
		{"failed from queued", JobStatusQueued, JobStatusFailed, true},
		{"failed from late stage", JobStatusMetadataExtracted, JobStatusFailed, true},
		{"out of completed", JobStatusCompleted, JobStatusFailed, false},
		{"out of failed", JobStatusFailed, JobStatusQueued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
	assert.False(t, JobStatusQueued.IsTerminal())
	assert.False(t, JobStatusReconstructing.IsTerminal())
}

func TestFullTextEmptyDocument(t *testing.T) {
	doc := &OcrDocument{}
	assert.Equal(t, "", doc.FullText())
	assert.Zero(t, doc.PageCount())
}
