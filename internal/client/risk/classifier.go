// Package risk buckets open documents by how long they have been waiting
// for signatures. Everything here is a pure function of the documents and a
// reference time, so a summary can be recomputed at any moment.
package risk

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/client/models"
)

const day = 24 * time.Hour

// Level is a risk bucket: 1 (low), 2 (medium) or 3 (high).
type Level int

const (
	Low    Level = 1
	Medium Level = 2
	High   Level = 3
)

// ParseLevel reads "1", "2", "3" or "all"; "all" and "" give the zero
// Level, which Filter treats as every bucket.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return 0, nil
	case "1":
		return Low, nil
	case "2":
		return Medium, nil
	case "3":
		return High, nil
	default:
		return 0, fmt.Errorf("unknown risk level %q", s)
	}
}

// Levels lists every bucket in ascending order.
var Levels = [...]Level{Low, Medium, High}

// Label is the dashboard caption of the bucket.
func (l Level) Label() string {
	switch l {
	case Low:
		return "Baixo Risco (0-1 Dia)"
	case Medium:
		return "Risco Moderado (2-5 Dias)"
	case High:
		return "Alto Risco (+5 Dias)"
	default:
		return ""
	}
}

// Class is the UI severity tag of the bucket.
func (l Level) Class() string {
	switch l {
	case Low:
		return "risk-low"
	case Medium:
		return "risk-medium"
	case High:
		return "risk-high"
	default:
		return ""
	}
}

// ElapsedDays counts whole days between created and now. The absolute
// difference keeps a client clock that lags the server at zero instead of
// going negative. A missing creation time counts as created now.
func ElapsedDays(created, now time.Time) int {
	if created.IsZero() {
		return 0
	}
	diff := now.Sub(created)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / day)
}

// LevelFor maps elapsed days to a bucket: 0–1 low, 2–5 medium, more high.
func LevelFor(days int) Level {
	switch {
	case days <= 1:
		return Low
	case days <= 5:
		return Medium
	default:
		return High
	}
}

// Summary counts open documents per bucket.
type Summary struct {
	Total  int
	Level1 int
	Level2 int
	Level3 int
}

// Count returns the number of documents in bucket l.
func (s Summary) Count(l Level) int {
	switch l {
	case Low:
		return s.Level1
	case Medium:
		return s.Level2
	case High:
		return s.Level3
	default:
		return 0
	}
}

// Summarize buckets every open (pending or new) document.
func Summarize(docs []models.Document, now time.Time) Summary {
	var s Summary
	for _, d := range docs {
		if !d.Status.IsOpen() {
			continue
		}
		s.Total++
		switch LevelFor(ElapsedDays(d.CreatedAt, now)) {
		case Low:
			s.Level1++
		case Medium:
			s.Level2++
		case High:
			s.Level3++
		}
	}
	return s
}

// PendingDocument is an open document annotated for the risk dashboard.
type PendingDocument struct {
	models.Document
	DaysPending int
	Level       Level
}

// Pending returns the open documents with their age and bucket, oldest
// first. Ties keep cache order.
func Pending(docs []models.Document, now time.Time) []PendingDocument {
	out := make([]PendingDocument, 0, len(docs))
	for _, d := range docs {
		if !d.Status.IsOpen() {
			continue
		}
		days := ElapsedDays(d.CreatedAt, now)
		out = append(out, PendingDocument{Document: d, DaysPending: days, Level: LevelFor(days)})
	}
	slices.SortStableFunc(out, func(a, b PendingDocument) int {
		return cmp.Compare(b.DaysPending, a.DaysPending)
	})
	return out
}

// Filter keeps the documents in bucket l; a zero Level keeps all.
func Filter(pending []PendingDocument, l Level) []PendingDocument {
	if l == 0 {
		return pending
	}
	out := make([]PendingDocument, 0, len(pending))
	for _, p := range pending {
		if p.Level == l {
			out = append(out, p)
		}
	}
	return out
}
