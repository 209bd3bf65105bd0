package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsOpen(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, true},
		{StatusPending, true},
		{StatusSigned, false},
		{StatusFailed, false},
		{StatusRejected, false},
		{Status("archived"), false},
		{Status(""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.IsOpen(), "status %q", tt.status)
	}
}

func TestDocument_SyncingIsNeverSerialized(t *testing.T) {
	d := Document{ID: 7, Name: "contract", Company: 1, Syncing: true}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Syncing")
	assert.NotContains(t, string(b), "isSyncing")

	var back Document
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.Syncing)
}

func TestDocument_DecodeBackendPayload(t *testing.T) {
	raw := `{
		"id": 101,
		"name": "NDA",
		"status": "pending",
		"token": "tok-1",
		"company": 3,
		"created_at": "2024-03-04T10:00:00Z",
		"ai_analysis": {"status": "processing", "summary": null, "insights": null}
	}`

	var d Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	assert.Equal(t, int64(101), d.ID)
	assert.Equal(t, StatusPending, d.Status)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), d.CreatedAt)
	require.NotNil(t, d.Analysis)
	assert.Equal(t, AnalysisProcessing, d.AnalysisStatus())
	assert.True(t, d.CanSync())
	assert.Equal(t, "101", d.IDString())
}

func TestDocument_CloneDoesNotAlias(t *testing.T) {
	d := Document{ID: 1, Signers: []Signer{{Name: "a"}}, Analysis: &Analysis{Insights: []string{"x"}}}
	c := d.Clone()

	c.Signers[0].Name = "b"
	c.Analysis.Insights[0] = "y"
	c.Analysis.Status = AnalysisFailed

	assert.Equal(t, "a", d.Signers[0].Name)
	assert.Equal(t, "x", d.Analysis.Insights[0])
	assert.Equal(t, AnalysisStatus(""), d.Analysis.Status)
}

func TestCompanyNames_Name(t *testing.T) {
	names := NewCompanyNames([]Company{{ID: 1, Name: "Acme"}})

	assert.Equal(t, "Acme", names.Name(1))
	assert.Equal(t, CompanyNameUnknown, names.Name(2))
	assert.Equal(t, CompanyNameMissing, names.Name(0))
}

func TestDocumentDraft_MarshalJSON(t *testing.T) {
	t.Run("url source", func(t *testing.T) {
		b, err := json.Marshal(DocumentDraft{Name: "n", Company: 2, Source: URLSource{URL: "https://x/a.pdf"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"n","company":2,"url_pdf":"https://x/a.pdf"}`, string(b))
	})

	t.Run("file source", func(t *testing.T) {
		b, err := json.Marshal(DocumentDraft{Name: "n", Company: 2, Source: FileSource{Base64: "JVBERi0="}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"n","company":2,"base64_pdf":"JVBERi0="}`, string(b))
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := json.Marshal(DocumentDraft{Name: "n"})
		require.ErrorIs(t, err, ErrNoSource)
	})
}
