package realtime

import (
	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"github.com/dmitrijs2005/docwatch/internal/client/repositories/documents"
)

// Outcome tells the caller what a list event did to the cache.
type Outcome int

const (
	// Applied means the cache changed.
	Applied Outcome = iota
	// Stale means the event referred to a document already deleted in this
	// session and was dropped.
	Stale
	// Unrecognized means the event type is unknown; nothing changed.
	Unrecognized
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	case Unrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// ListState is the cache plus the ids deleted since the last full load.
// Payloads carry no version, so a delete is final for the session: later
// created/updated events for the same id are dropped.
type ListState struct {
	Docs    documents.Repository
	deleted map[int64]struct{}
}

func NewListState(docs documents.Repository) *ListState {
	return &ListState{Docs: docs, deleted: make(map[int64]struct{})}
}

// Load replaces the cache with a full server listing and forgets
// tombstones, the listing being authoritative.
func (s *ListState) Load(docs []models.Document) {
	s.Docs.Load(docs)
	clear(s.deleted)
}

// Deleted reports whether id was deleted since the last Load.
func (s *ListState) Deleted(id int64) bool {
	_, ok := s.deleted[id]
	return ok
}

// ApplyListEvent applies one list channel event.
//
//   - document_created: prepend (or replace if the id is already cached).
//   - document_updated: full replacement in place; an unknown id is
//     inserted at the front to heal a missed create.
//   - document_deleted: remove and remember the id.
func ApplyListEvent(s *ListState, m models.ListMessage) Outcome {
	switch m.EventType {
	case models.EventDocumentCreated, models.EventDocumentUpdated:
		if s.Deleted(m.Document.ID) {
			return Stale
		}
		s.Docs.Upsert(m.Document)
		return Applied
	case models.EventDocumentDeleted:
		s.Docs.Remove(m.Document.ID)
		s.deleted[m.Document.ID] = struct{}{}
		return Applied
	default:
		return Unrecognized
	}
}
