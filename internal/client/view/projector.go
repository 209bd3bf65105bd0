// Package view derives the displayed document list from the cache: a
// case-insensitive search filter followed by a stable, locale-aware sort.
// A projection holds no state of its own; it is a function of the cache
// contents, the query and the company lookup.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query is the user's current search term and sort.
type Query struct {
	Search string
	Sort   SortState
}

// Projector filters and sorts documents. The collator is not safe for
// concurrent use, so a Projector belongs to one event loop.
type Projector struct {
	collator *collate.Collator
}

func NewProjector(tag language.Tag) *Projector {
	return &Projector{collator: collate.New(tag)}
}

// Project returns the documents matching q.Search ordered by q.Sort. The
// input slice is not modified.
func (p *Projector) Project(docs []models.Document, q Query, names models.CompanyNames) []models.Document {
	out := Filter(docs, q.Search, names)
	p.Sort(out, q.Sort, names)
	return out
}

// Filter keeps documents where the term is a case-insensitive substring of
// the name, status, token, company name or id. An empty term keeps all.
func Filter(docs []models.Document, term string, names models.CompanyNames) []models.Document {
	out := make([]models.Document, 0, len(docs))
	term = strings.ToLower(term)
	for _, d := range docs {
		if term == "" || matches(d, term, names) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d models.Document, term string, names models.CompanyNames) bool {
	fields := [...]string{
		d.Name,
		string(d.Status),
		d.Token,
		names.Name(d.Company),
		d.IDString(),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Sort orders docs in place. Equal elements keep their relative order.
func (p *Projector) Sort(docs []models.Document, s SortState, names models.CompanyNames) {
	sign := s.Direction.sign()
	slices.SortStableFunc(docs, func(a, b models.Document) int {
		return sign * p.compare(a, b, s.Key, names)
	})
}

func (p *Projector) compare(a, b models.Document, key SortKey, names models.CompanyNames) int {
	switch key {
	case SortID:
		return cmp.Compare(a.ID, b.ID)
	case SortCompany:
		return cmp.Compare(a.Company, b.Company)
	case SortCreatedAt:
		// zero time sorts first, like a missing value
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortLastUpdatedAt:
		return a.LastUpdatedAt.Compare(b.LastUpdatedAt)
	case SortName:
		return p.collator.CompareString(a.Name, b.Name)
	case SortStatus:
		return p.collator.CompareString(string(a.Status), string(b.Status))
	case SortToken:
		return p.collator.CompareString(a.Token, b.Token)
	case SortCompanyName:
		return p.collator.CompareString(names.Name(a.Company), names.Name(b.Company))
	default:
		return 0
	}
}
