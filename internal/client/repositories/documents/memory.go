package documents

import (
	"slices"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

type MemoryRepository struct {
	docs []models.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.docs, func(d models.Document) bool { return d.ID == id })
}

func (r *MemoryRepository) Load(docs []models.Document) {
	r.docs = make([]models.Document, 0, len(docs))
	seen := make(map[int64]struct{}, len(docs))
	for _, d := range docs {
		// a duplicated id in the payload keeps its first occurrence
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		r.docs = append(r.docs, d.Clone())
	}
}

func (r *MemoryRepository) Upsert(doc models.Document) bool {
	doc = doc.Clone()
	if i := r.indexOf(doc.ID); i >= 0 {
		// Syncing is local state, a server replacement does not know about it
		doc.Syncing = r.docs[i].Syncing
		r.docs[i] = doc
		return false
	}
	r.docs = slices.Insert(r.docs, 0, doc)
	return true
}

func (r *MemoryRepository) Remove(id int64) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.docs = slices.Delete(r.docs, i, i+1)
	return true
}

func (r *MemoryRepository) All() []models.Document {
	out := make([]models.Document, len(r.docs))
	for i, d := range r.docs {
		out[i] = d.Clone()
	}
	return out
}

func (r *MemoryRepository) GetByID(id int64) (models.Document, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return models.Document{}, false
	}
	return r.docs[i].Clone(), true
}

func (r *MemoryRepository) Len() int {
	return len(r.docs)
}

func (r *MemoryRepository) SetSyncing(id int64, syncing bool) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.docs[i].Syncing = syncing
	return true
}
