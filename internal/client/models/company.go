package models

import "time"

// Company owns documents. The client only reads companies to resolve names.
type Company struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	APIToken      string    `json:"apiToken,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	LastUpdatedAt time.Time `json:"last_updated_at,omitzero"`
}

const (
	// CompanyNameMissing is shown for documents without a company.
	CompanyNameMissing = "N/A"
	// CompanyNameUnknown is shown when the company id is not in the lookup.
	CompanyNameUnknown = "Empresa Desconhecida"
)

// CompanyNames resolves company ids to display names.
type CompanyNames map[int64]string

// NewCompanyNames builds a lookup from a company list.
func NewCompanyNames(companies []Company) CompanyNames {
	names := make(CompanyNames, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names
}

// Name returns the display name for id.
func (n CompanyNames) Name(id int64) string {
	if id == 0 {
		return CompanyNameMissing
	}
	if name, ok := n[id]; ok {
		return name
	}
	return CompanyNameUnknown
}
