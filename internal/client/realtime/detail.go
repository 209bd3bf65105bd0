package realtime

import "github.com/dmitrijs2005/docwatch/internal/client/models"

// DetailState is the document shown in the detail view and whether an
// analysis is running for it.
type DetailState struct {
	Document   *models.Document
	Processing bool
}

// DetailOutcome lists the follow-ups the owner must perform.
type DetailOutcome struct {
	Applied      bool
	Refetch      bool
	Close        bool
	Unrecognized bool
}

// ShouldWatch reports whether the detail channel is needed for doc.
func ShouldWatch(doc models.Document) bool {
	return doc.AnalysisStatus().InProgress()
}

// ApplyDetailEvent applies one detail channel event.
func ApplyDetailEvent(s *DetailState, m models.DetailMessage) DetailOutcome {
	switch m.EventType {
	case models.EventAnalysisStatusUpdate:
		if s.Document != nil {
			if s.Document.Analysis == nil {
				s.Document.Analysis = &models.Analysis{}
			}
			s.Document.Analysis.Status = m.Patch.Status
			if m.Patch.Summary != "" {
				s.Document.Analysis.Summary = m.Patch.Summary
			}
		}
		if m.Patch.Status.Terminal() {
			s.Processing = false
		}
		return DetailOutcome{Applied: true}
	case models.EventAnalysisCompleted:
		if s.Document != nil && s.Document.Analysis != nil {
			s.Document.Analysis.Status = models.AnalysisCompleted
		}
		s.Processing = false
		return DetailOutcome{Applied: true, Refetch: true, Close: true}
	default:
		return DetailOutcome{Unrecognized: true}
	}
}
