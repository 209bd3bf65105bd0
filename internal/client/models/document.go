// Package models defines the document, company and realtime message types
// exchanged with the backend.
package models

import (
	"strconv"
	"time"
)

// Status is the signature status of a document. The set is open: values the
// client does not know are kept verbatim and classify as neither pending,
// signed nor failed.
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusSigned   Status = "signed"
	StatusFailed   Status = "failed"
	StatusRejected Status = "rejected"
)

// IsOpen reports whether the document still awaits signatures.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusNew
}

// AnalysisStatus is the lifecycle state of an AI analysis.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

// InProgress reports whether the analysis has not reached a terminal state.
func (s AnalysisStatus) InProgress() bool {
	return s == AnalysisPending || s == AnalysisProcessing
}

// Terminal reports whether the analysis finished, successfully or not.
func (s AnalysisStatus) Terminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

// Analysis is the AI analysis attached to a document.
type Analysis struct {
	Status        AnalysisStatus `json:"status"`
	Summary       string         `json:"summary,omitempty"`
	MissingTopics []string       `json:"missing_topics,omitempty"`
	Insights      []string       `json:"insights,omitempty"`
	ModelUsed     string         `json:"model_used,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitzero"`
	LastUpdatedAt time.Time      `json:"last_updated_at,omitzero"`
}

// Signer is a signatory attached to a document.
type Signer struct {
	ID         int64  `json:"id,omitempty"`
	Token      string `json:"token,omitempty"`
	Status     string `json:"status,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ExternalID string `json:"externalID,omitempty"`
	Document   int64  `json:"document,omitempty"`
}

// Document is the unit mirrored by the local cache. ID is the reconciliation
// key.
type Document struct {
	ID            int64     `json:"id"`
	OpenID        int64     `json:"openID,omitempty"`
	Token         string    `json:"token,omitempty"`
	Name          string    `json:"name"`
	Status        Status    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	LastUpdatedAt time.Time `json:"last_updated_at,omitzero"`
	CreatedBy     string    `json:"created_by,omitempty"`
	Company       int64     `json:"company"`
	ExternalID    string    `json:"externalID,omitempty"`
	Signers       []Signer  `json:"signers_db,omitempty"`
	Analysis      *Analysis `json:"ai_analysis,omitempty"`
	URLPDF        string    `json:"url_pdf,omitempty"`
	SignedFileURL string    `json:"signed_file_url,omitempty"`

	// Syncing marks an in-flight status sync. It is local UI state and is
	// never sent to the server.
	Syncing bool `json:"-"`
}

// IDString returns the id in decimal form, as matched by search.
func (d Document) IDString() string {
	return strconv.FormatInt(d.ID, 10)
}

// CanSync reports whether a status sync may be requested for the document.
func (d Document) CanSync() bool {
	return d.Token != "" && !d.Syncing
}

// AnalysisStatus returns the analysis status or "" when there is none.
func (d Document) AnalysisStatus() AnalysisStatus {
	if d.Analysis == nil {
		return ""
	}
	return d.Analysis.Status
}

// Clone returns a deep copy, so cache readers cannot alias cached slices.
func (d Document) Clone() Document {
	c := d
	if d.Signers != nil {
		c.Signers = append([]Signer(nil), d.Signers...)
	}
	if d.Analysis != nil {
		a := *d.Analysis
		a.MissingTopics = append([]string(nil), d.Analysis.MissingTopics...)
		a.Insights = append([]string(nil), d.Analysis.Insights...)
		c.Analysis = &a
	}
	return c
}

// SyncStatusResult is returned by the status sync endpoint.
type SyncStatusResult struct {
	NewStatus Status `json:"new_status"`
	Message   string `json:"message"`
}

// ReanalyzeResult is returned by the reanalysis automation endpoint.
type ReanalyzeResult struct {
	DocumentID int64  `json:"document_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}
