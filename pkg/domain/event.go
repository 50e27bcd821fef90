package domain

import (
	"time"
)

// EventSummary is one row of a search result. Labels are display-ready;
// SortKey carries the true start time when the payload had one and is
// used only for ordering.
type EventSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CategoryLabel string     `json:"category_label"`
	DateTimeLabel string     `json:"datetime_label"`
	ImageURL      string     `json:"image_url,omitempty"`
	VenueName     string     `json:"venue_name"`
	SeatmapURL    string     `json:"seatmap_url,omitempty"`
	SortKey       *time.Time `json:"sort_key,omitempty"`
}

// EventDetail is the full single-event model. Every nested structure is
// optional; absence at any level is represented by a nil pointer or nil
// slice, never by a zero-value placeholder.
type EventDetail struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name,omitempty"`
	URL             string           `json:"url,omitempty"`
	Images          []string         `json:"images,omitempty"`
	Dates           *EventDates      `json:"dates,omitempty"`
	PriceRanges     []PriceRange     `json:"price_ranges,omitempty"`
	Classifications []Classification `json:"classifications,omitempty"`
	SeatmapURL      string           `json:"seatmap_url,omitempty"`
	Embedded        *EventEmbedded   `json:"embedded,omitempty"`
}

type EventDates struct {
	Start  *EventStart  `json:"start,omitempty"`
	Status *EventStatus `json:"status,omitempty"`
}

type EventStart struct {
	LocalDate string `json:"local_date,omitempty"`
	LocalTime string `json:"local_time,omitempty"`
	DateTime  string `json:"datetime,omitempty"`
}

// EventStatus holds the sale-status code: onsale, offsale, canceled,
// postponed or rescheduled.
type EventStatus struct {
	Code string `json:"code,omitempty"`
}

// PriceRange is emitted only when the source object exists; Min and Max
// are independently nullable.
type PriceRange struct {
	Type     string   `json:"type,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// Classification flattens the five-level segment tree; each level is
// present only when the source carried a name for it.
type Classification struct {
	Segment  *string `json:"segment,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	SubGenre *string `json:"sub_genre,omitempty"`
	Type     *string `json:"type,omitempty"`
	SubType  *string `json:"sub_type,omitempty"`
}

// EventEmbedded holds the venue and attraction lists. A list that is
// absent, or empty after filtering, is nil so the rendering layer can
// treat "no data" uniformly with every other optional field.
type EventEmbedded struct {
	Venues      []VenueDetail `json:"venues,omitempty"`
	Attractions []Attraction  `json:"attractions,omitempty"`
}

type VenueDetail struct {
	Name        string         `json:"name,omitempty"`
	URL         string         `json:"url,omitempty"`
	AddressLine string         `json:"address_line,omitempty"`
	City        string         `json:"city,omitempty"`
	State       *StateInfo     `json:"state,omitempty"`
	Country     string         `json:"country,omitempty"`
	Location    *GeoPoint      `json:"location,omitempty"`
	BoxOffice   *BoxOfficeInfo `json:"box_office,omitempty"`
	GeneralInfo *GeneralInfo   `json:"general_info,omitempty"`
}

type StateInfo struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// GeoPoint keeps coordinates as strings, matching the upstream wire
// format.
type GeoPoint struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

type BoxOfficeInfo struct {
	PhoneNumberDetail string `json:"phone_number_detail,omitempty"`
	OpenHoursDetail   string `json:"open_hours_detail,omitempty"`
}

type GeneralInfo struct {
	GeneralRule string `json:"general_rule,omitempty"`
	ChildRule   string `json:"child_rule,omitempty"`
}

type Attraction struct {
	Name string `json:"name,omitempty"`
}

// SearchQuery carries the parameters of one event search.
type SearchQuery struct {
	Keyword  string  `json:"keyword"`
	Category string  `json:"category,omitempty"`
	Distance int     `json:"distance,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
