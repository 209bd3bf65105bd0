package models

import "encoding/json"

// Message envelope types.
const (
	MessageTypeListUpdate     = "document_list_update"
	MessageTypeDocumentUpdate = "document_update"
)

// List channel event types.
const (
	EventDocumentCreated = "document_created"
	EventDocumentUpdated = "document_updated"
	EventDocumentDeleted = "document_deleted"
)

// Detail channel event types.
const (
	EventAnalysisStatusUpdate = "analysis_status_update"
	EventAnalysisCompleted    = "analysis_completed"
)

// Envelope is the common shape of every pushed frame. Data is decoded once
// the event type is known.
type Envelope struct {
	Type      string          `json:"type"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// ListMessage is a decoded list channel event. Document carries the full
// representation for created/updated; for deleted only ID is meaningful.
type ListMessage struct {
	EventType string
	Document  Document
}

// AnalysisPatch is the incremental payload of analysis_status_update.
type AnalysisPatch struct {
	Status  AnalysisStatus `json:"status"`
	Summary string         `json:"summary,omitempty"`
}

// DetailMessage is a decoded detail channel event.
type DetailMessage struct {
	EventType string
	Patch     AnalysisPatch
}
