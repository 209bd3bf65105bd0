package view

import (
	"fmt"
	"strings"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortID            SortKey = "id"
	SortName          SortKey = "name"
	SortStatus        SortKey = "status"
	SortToken         SortKey = "token"
	SortCreatedAt     SortKey = "created_at"
	SortLastUpdatedAt SortKey = "last_updated_at"
	SortCompany       SortKey = "company"
	// SortCompanyName is derived through the company lookup, not stored.
	SortCompanyName SortKey = "company_name"
)

var sortKeys = []SortKey{SortID, SortName, SortStatus, SortToken, SortCreatedAt, SortLastUpdatedAt, SortCompany, SortCompanyName}

// ParseSortKey accepts a column name as typed by the user.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "companyname" {
		return SortCompanyName, nil
	}
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) sign() int {
	if d == Desc {
		return -1
	}
	return 1
}

// SortState is the active sort column and direction.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort lists the most recently created documents first.
func DefaultSort() SortState {
	return SortState{Key: SortCreatedAt, Direction: Desc}
}

// SortBy applies a column click: the active column flips direction, any
// other column becomes active in ascending order.
func (s SortState) SortBy(key SortKey) SortState {
	if s.Key == key {
		if s.Direction == Asc {
			return SortState{Key: key, Direction: Desc}
		}
		return SortState{Key: key, Direction: Asc}
	}
	return SortState{Key: key, Direction: Asc}
}
