package domain

type Sort string

const (
	SortNewest     Sort = "newest"
	SortOldest     Sort = "oldest"
	SortRatingDesc Sort = "rating_desc"
	SortRatingAsc  Sort = "rating_asc"
)

func ValidSort(s Sort) bool {
	switch s {
	case SortNewest, SortOldest, SortRatingDesc, SortRatingAsc:
		return true
	}
	return false
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// FilterSpec is an immutable query description. Zero values mean "not
// filtered": empty Q, nil Sources (all known sources), nil bounds.
// An explicitly empty Sources slice is distinct from nil and matches
// nothing.
type FilterSpec struct {
	Q          string
	Sources    []Source
	ListingID  string
	Tags       []string
	Types      []ReviewType
	RatingMin  *float64
	RatingMax  *float64
	Sort       Sort
	Limit      int
	Cursor     int
	SourcesSet bool // true when the caller restricted Sources, even to an empty set
}

type ReviewsPage struct {
	Count      int      `json:"count"`
	NextCursor *string  `json:"cursor,omitempty"`
	Reviews    []Review `json:"reviews"`
}

// Bulk moderation items and per-item outcomes. Bulk calls never abort
// early; a missing key is reported on its own row.
type BulkItem struct {
	Source Source `json:"source"`
	ID     string `json:"reviewId"`
}

type BulkResult struct {
	Source   Source `json:"source"`
	ID       string `json:"reviewId"`
	Success  bool   `json:"success"`
	NewValue bool   `json:"newValue"`
	Error    string `json:"error,omitempty"`
}

// Trends aggregation output. ByMonth is a contiguous month axis; months
// without reviews appear with Count 0 and AvgRating 0.
type MonthBucket struct {
	Month     string  `json:"month"` // "2024-08"
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

type CategoryAvg struct {
	Name string  `json:"name"`
	Avg  float64 `json:"avg"` // 0-10 presentation scale
}

type SourceCount struct {
	Source Source `json:"source"`
	Count  int    `json:"count"`
}

type TrendsResult struct {
	ByMonth    []MonthBucket `json:"byMonth"`
	ByCategory []CategoryAvg `json:"byCategory"`
	BySource   []SourceCount `json:"bySource"`
}
