// Package documents provides the client-side document cache.
//
// # Overview
//
// The package defines a Repository interface over an ordered, id-keyed set
// of models.Document, and an in-memory implementation (MemoryRepository).
// The cache is the single local source of truth for the list, risk and
// detail views; it is rebuilt from the server on every start and never
// persisted.
//
// # Ordering
//
// Load keeps server order. Upsert of a known id keeps its position; upsert
// of a new id prepends (most recent first), matching document_created
// pushes.
//
// # Concurrency
//
// MemoryRepository is not synchronized. It is owned by a single event loop
// (see internal/client/eventloop) and must only be touched from it.
package documents
