package realtime

import (
	"testing"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldWatch(t *testing.T) {
	assert.False(t, ShouldWatch(models.Document{}))
	assert.True(t, ShouldWatch(models.Document{Analysis: &models.Analysis{Status: models.AnalysisPending}}))
	assert.True(t, ShouldWatch(models.Document{Analysis: &models.Analysis{Status: models.AnalysisProcessing}}))
	assert.False(t, ShouldWatch(models.Document{Analysis: &models.Analysis{Status: models.AnalysisCompleted}}))
	assert.False(t, ShouldWatch(models.Document{Analysis: &models.Analysis{Status: models.AnalysisFailed}}))
}

func TestApplyDetailEvent_StatusUpdate(t *testing.T) {
	doc := &models.Document{ID: 1, Status: models.StatusPending}
	s := &DetailState{Document: doc, Processing: true}

	out := ApplyDetailEvent(s, models.DetailMessage{
		EventType: models.EventAnalysisStatusUpdate,
		Patch:     models.AnalysisPatch{Status: models.AnalysisProcessing, Summary: "partial"},
	})

	assert.Equal(t, DetailOutcome{Applied: true}, out)
	require.NotNil(t, doc.Analysis)
	assert.Equal(t, models.AnalysisProcessing, doc.Analysis.Status)
	assert.Equal(t, "partial", doc.Analysis.Summary)
	assert.Equal(t, models.StatusPending, doc.Status, "top-level status is untouched")
	assert.True(t, s.Processing)
}

func TestApplyDetailEvent_StatusUpdateKeepsSummaryWhenAbsent(t *testing.T) {
	doc := &models.Document{ID: 1, Analysis: &models.Analysis{Status: models.AnalysisPending, Summary: "old"}}
	s := &DetailState{Document: doc, Processing: true}

	ApplyDetailEvent(s, models.DetailMessage{EventType: models.EventAnalysisStatusUpdate, Patch: models.AnalysisPatch{Status: models.AnalysisFailed}})

	assert.Equal(t, "old", doc.Analysis.Summary)
	assert.False(t, s.Processing)
}

func TestApplyDetailEvent_Completed(t *testing.T) {
	doc := &models.Document{ID: 1, Analysis: &models.Analysis{Status: models.AnalysisProcessing}}
	s := &DetailState{Document: doc, Processing: true}

	out := ApplyDetailEvent(s, models.DetailMessage{EventType: models.EventAnalysisCompleted})

	assert.Equal(t, DetailOutcome{Applied: true, Refetch: true, Close: true}, out)
	assert.False(t, s.Processing)
	assert.Equal(t, models.AnalysisCompleted, doc.Analysis.Status)
}

func TestApplyDetailEvent_Unrecognized(t *testing.T) {
	s := &DetailState{Processing: true}

	out := ApplyDetailEvent(s, models.DetailMessage{EventType: "test_message"})

	assert.True(t, out.Unrecognized)
	assert.True(t, s.Processing)
}
