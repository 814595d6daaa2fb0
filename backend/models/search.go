package models

import "time"

// Sort keys for search results
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

type SearchFilter struct {
	Category    string   `json:"category,omitempty"`
	Level       string   `json:"level,omitempty"`
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
	MinRating   *float64 `json:"min_rating,omitempty"`
	Language    string   `json:"language,omitempty"`
	Instructor  string   `json:"instructor,omitempty"`
	DurationMin *float64 `json:"duration_min,omitempty"`
	DurationMax *float64 `json:"duration_max,omitempty"`
	Tags        []string `json:"tags,omitempty"` // any-match
	SortBy      string   `json:"sort_by,omitempty"`
	Page        int      `json:"page,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

type SearchResult struct {
	Courses []Course `json:"courses"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	HasMore bool     `json:"has_more"`
}

// SearchAnalytics is an append-only record of one executed search.
type SearchAnalytics struct {
	ID          string       `json:"id"`
	Query       string       `json:"query"` // normalized
	Filters     SearchFilter `json:"filters"`
	ResultCount int          `json:"result_count"`
	Timestamp   time.Time    `json:"timestamp"`
	UserID      string       `json:"user_id,omitempty"`
	SessionID   string       `json:"session_id"`
}

type PopularSearch struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
