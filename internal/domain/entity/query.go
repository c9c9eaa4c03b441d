package entity

import (
	"math"
	"strings"
)

// SortField names a sortable Entry column.
type SortField string

const (
	SortByName   SortField = "name"
	SortByEmail  SortField = "email"
	SortByPhone  SortField = "phone"
	SortByPlace  SortField = "place"
	SortByGender SortField = "gender"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter holds optional per-field constraints. Empty strings and an empty
// Hobbies slice mean "no constraint on that field".
type Filter struct {
	// Name, Email, Phone and Place are case-insensitive substring matches.
	Name  string
	Email string
	Phone string
	Place string

	// Gender is an exact match.
	Gender Gender

	// Hobbies matches entries whose hobby set intersects this one.
	Hobbies []string
}

// IsEmpty reports whether f constrains nothing.
func (f Filter) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.Phone == "" && f.Place == "" &&
		f.Gender == "" && len(f.Hobbies) == 0
}

// Matches reports whether e satisfies every constraint in f.
func (f Filter) Matches(e Entry) bool {
	if !containsFold(e.Name, f.Name) ||
		!containsFold(e.Email, f.Email) ||
		!containsFold(e.Phone, f.Phone) ||
		!containsFold(e.Place, f.Place) {
		return false
	}
	if f.Gender != "" && e.Gender != f.Gender {
		return false
	}
	if len(f.Hobbies) > 0 && !e.HasAnyHobby(f.Hobbies) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Sort is a column plus direction.
type Sort struct {
	Field SortField
	Order SortOrder
}

// Query is a filtered, sorted and paginated list request.
type Query struct {
	Filter Filter
	Sort   Sort
	// Page is 1-based.
	Page  int
	Limit int
}

// Normalize applies defaults and clamps values. defaultLimit and maxLimit
// fall back to DefaultLimit and MaxLimit when non-positive.
func (q *Query) Normalize(defaultLimit, maxLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}

	switch q.Sort.Field {
	case SortByName, SortByEmail, SortByPhone, SortByPlace, SortByGender:
	default:
		q.Sort.Field = SortByName
	}

	switch q.Sort.Order {
	case SortAsc, SortDesc:
	default:
		q.Sort.Order = SortAsc
	}

	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

// Offset is the number of matching entries skipped before the page starts.
// It saturates at math.MaxInt instead of overflowing for huge pages.
func (q Query) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// SortValue returns the value of e used to order by field.
func SortValue(e Entry, field SortField) string {
	switch field {
	case SortByEmail:
		return e.Email
	case SortByPhone:
		return e.Phone
	case SortByPlace:
		return e.Place
	case SortByGender:
		return string(e.Gender)
	default:
		return e.Name
	}
}

// ListResult is one page of a query plus the total match count.
type ListResult struct {
	Total   int
	Page    int
	Limit   int
	Entries []Entry
}
