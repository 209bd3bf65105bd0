package realtime

import (
	"testing"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListFrame(t *testing.T) {
	m, err := DecodeListFrame([]byte(`{"type":"document_list_update","event_type":"document_updated","data":{"id":4,"name":"x","status":"signed","company":1}}`))
	require.NoError(t, err)
	assert.Equal(t, models.EventDocumentUpdated, m.EventType)
	assert.Equal(t, int64(4), m.Document.ID)
	assert.Equal(t, models.StatusSigned, m.Document.Status)

	m, err = DecodeListFrame([]byte(`{"type":"document_list_update","event_type":"document_deleted","data":{"id":9}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), m.Document.ID)
}

func TestDecodeListFrame_Errors(t *testing.T) {
	_, err := DecodeListFrame([]byte(`not json`))
	require.Error(t, err)

	_, err = DecodeListFrame([]byte(`{"type":"test_message","message":"hi"}`))
	require.ErrorIs(t, err, ErrForeignMessage)
}

func TestDecodeDetailFrame(t *testing.T) {
	m, err := DecodeDetailFrame([]byte(`{"type":"document_update","event_type":"analysis_status_update","data":{"status":"processing","summary":null}}`))
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisProcessing, m.Patch.Status)
	assert.Empty(t, m.Patch.Summary)

	m, err = DecodeDetailFrame([]byte(`{"type":"document_update","event_type":"analysis_completed","data":{"insights":["a"]}}`))
	require.NoError(t, err)
	assert.Equal(t, models.EventAnalysisCompleted, m.EventType)

	_, err = DecodeDetailFrame([]byte(`{"type":"document_list_update","event_type":"document_created","data":{}}`))
	require.ErrorIs(t, err, ErrForeignMessage)
}

func TestChannelURLs(t *testing.T) {
	u, err := ListURL("ws://localhost:8000/", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8000/ws/document/list/?token=abc", u)

	u, err = DetailURL("https://api.example.com", 12, "a b")
	require.NoError(t, err)
	assert.Equal(t, "wss://api.example.com/ws/document/12/?token=a+b", u)

	_, err = ListURL("ftp://host", "t")
	require.Error(t, err)
}
