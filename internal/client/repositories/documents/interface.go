package documents

import "github.com/dmitrijs2005/docwatch/internal/client/models"

// Repository is the local mirror of the account's document set, kept in
// insertion/load order with at most one entry per id.
type Repository interface {
	// Load replaces the whole contents with docs.
	Load(docs []models.Document)

	// Upsert replaces the entry with the same id in place, or prepends doc
	// when the id is not present. It reports whether doc was inserted.
	Upsert(doc models.Document) bool

	// Remove deletes the entry with id. It reports whether anything was removed.
	Remove(id int64) bool

	// All returns a copy of the ordered contents.
	All() []models.Document

	// GetByID returns the entry with id.
	GetByID(id int64) (models.Document, bool)

	// Len returns the number of entries.
	Len() int

	// SetSyncing sets the transient sync flag of the entry with id.
	SetSyncing(id int64, syncing bool) bool
}
