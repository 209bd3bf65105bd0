package models

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoSource      = errors.New("document source is required")
	ErrUnknownSource = errors.New("unknown document source")
)

// Source is where the PDF of a new document comes from. Exactly one variant
// is set per draft: URLSource or FileSource.
type Source interface {
	isSource()
}

// URLSource points the backend at a publicly reachable PDF.
type URLSource struct {
	URL string
}

// FileSource carries a PDF already encoded as Base64 by the caller.
type FileSource struct {
	Base64 string
}

func (URLSource) isSource()  {}
func (FileSource) isSource() {}

// DocumentDraft is the payload for create and update calls.
type DocumentDraft struct {
	Name    string
	Company int64
	Source  Source
	Signers []Signer
}

type draftWire struct {
	Name      string   `json:"name"`
	Company   int64    `json:"company"`
	URLPDF    string   `json:"url_pdf,omitempty"`
	Base64PDF string   `json:"base64_pdf,omitempty"`
	Signers   []Signer `json:"signers,omitempty"`
}

// MarshalJSON flattens the source union into the backend's url_pdf /
// base64_pdf fields.
func (d DocumentDraft) MarshalJSON() ([]byte, error) {
	w := draftWire{Name: d.Name, Company: d.Company, Signers: d.Signers}
	switch s := d.Source.(type) {
	case nil:
		return nil, ErrNoSource
	case URLSource:
		w.URLPDF = s.URL
	case *URLSource:
		w.URLPDF = s.URL
	case FileSource:
		w.Base64PDF = s.Base64
	case *FileSource:
		w.Base64PDF = s.Base64
	default:
		return nil, ErrUnknownSource
	}
	return json.Marshal(w)
}
