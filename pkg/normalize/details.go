package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/eventscout/eventscout/pkg/domain"
)

type detailPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Dates *struct {
		Start *struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
			DateTime  string `json:"dateTime"`
		} `json:"start"`
		Status *struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`
	PriceRanges     []json.RawMessage `json:"priceRanges"`
	Classifications []json.RawMessage `json:"classifications"`
	Seatmap         *struct {
		StaticURL string `json:"staticUrl"`
	} `json:"seatmap"`
	Embedded *struct {
		Venues      []json.RawMessage `json:"venues"`
		Attractions []json.RawMessage `json:"attractions"`
	} `json:"_embedded"`
}

type priceRangeEntry struct {
	Type     string   `json:"type"`
	Currency string   `json:"currency"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
}

type classificationEntry struct {
	Segment  *nameHolder `json:"segment"`
	Genre    *nameHolder `json:"genre"`
	SubGenre *nameHolder `json:"subGenre"`
	Type     *nameHolder `json:"type"`
	SubType  *nameHolder `json:"subType"`
}

type venueEntry struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Address *struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	City  *nameHolder `json:"city"`
	State *struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Country  *nameHolder `json:"country"`
	Location *struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"location"`
	BoxOfficeInfo *struct {
		PhoneNumberDetail string `json:"phoneNumberDetail"`
		OpenHoursDetail   string `json:"openHoursDetail"`
	} `json:"boxOfficeInfo"`
	GeneralInfo *struct {
		GeneralRule string `json:"generalRule"`
		ChildRule   string `json:"childRule"`
	} `json:"generalInfo"`
}

// EventDetails converts a raw single-event payload into an EventDetail.
// Absence at any nesting level yields a nil branch and never aborts the
// rest of the parse. List entries are normalized independently; an entry
// that is not an object is skipped.
func EventDetails(raw []byte) (*domain.EventDetail, error) {
	var wire detailPayload
	if err := lenientUnmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode event details: %w", err)
	}

	detail := &domain.EventDetail{
		ID:   wire.ID,
		Name: wire.Name,
		URL:  wire.URL,
	}

	for _, img := range wire.Images {
		detail.Images = append(detail.Images, img.URL)
	}

	if wire.Dates != nil {
		dates := &domain.EventDates{}
		if wire.Dates.Start != nil {
			dates.Start = &domain.EventStart{
				LocalDate: wire.Dates.Start.LocalDate,
				LocalTime: wire.Dates.Start.LocalTime,
				DateTime:  wire.Dates.Start.DateTime,
			}
		}
		if wire.Dates.Status != nil {
			dates.Status = &domain.EventStatus{Code: wire.Dates.Status.Code}
		}
		if dates.Start != nil || dates.Status != nil {
			detail.Dates = dates
		}
	}

	for _, rawRange := range wire.PriceRanges {
		if !isJSONObject(rawRange) {
			continue
		}
		var pr priceRangeEntry
		if err := lenientUnmarshal(rawRange, &pr); err != nil {
			continue
		}
		detail.PriceRanges = append(detail.PriceRanges, domain.PriceRange{
			Type:     pr.Type,
			Currency: pr.Currency,
			Min:      pr.Min,
			Max:      pr.Max,
		})
	}

	for _, rawClass := range wire.Classifications {
		if !isJSONObject(rawClass) {
			continue
		}
		var ce classificationEntry
		if err := lenientUnmarshal(rawClass, &ce); err != nil {
			continue
		}
		detail.Classifications = append(detail.Classifications, domain.Classification{
			Segment:  holderName(ce.Segment),
			Genre:    holderName(ce.Genre),
			SubGenre: holderName(ce.SubGenre),
			Type:     holderName(ce.Type),
			SubType:  holderName(ce.SubType),
		})
	}

	if wire.Seatmap != nil {
		detail.SeatmapURL = wire.Seatmap.StaticURL
	}

	if wire.Embedded != nil {
		embedded := &domain.EventEmbedded{}
		for _, rawVenue := range wire.Embedded.Venues {
			if !isJSONObject(rawVenue) {
				continue
			}
			var ve venueEntry
			if err := lenientUnmarshal(rawVenue, &ve); err != nil {
				continue
			}
			embedded.Venues = append(embedded.Venues, convertVenue(ve))
		}
		for _, rawAttraction := range wire.Embedded.Attractions {
			if !isJSONObject(rawAttraction) {
				continue
			}
			var nh nameHolder
			if err := lenientUnmarshal(rawAttraction, &nh); err != nil {
				continue
			}
			embedded.Attractions = append(embedded.Attractions, domain.Attraction{Name: nh.Name})
		}
		detail.Embedded = embedded
	}

	return detail, nil
}

func convertVenue(ve venueEntry) domain.VenueDetail {
	venue := domain.VenueDetail{
		Name: ve.Name,
		URL:  ve.URL,
	}
	if ve.Address != nil {
		venue.AddressLine = ve.Address.Line1
	}
	if ve.City != nil {
		venue.City = ve.City.Name
	}
	if ve.State != nil {
		venue.State = &domain.StateInfo{Name: ve.State.Name, Code: ve.State.StateCode}
	}
	if ve.Country != nil {
		venue.Country = ve.Country.Name
	}
	if ve.Location != nil {
		venue.Location = &domain.GeoPoint{
			Latitude:  ve.Location.Latitude,
			Longitude: ve.Location.Longitude,
		}
	}
	if ve.BoxOfficeInfo != nil {
		venue.BoxOffice = &domain.BoxOfficeInfo{
			PhoneNumberDetail: ve.BoxOfficeInfo.PhoneNumberDetail,
			OpenHoursDetail:   ve.BoxOfficeInfo.OpenHoursDetail,
		}
	}
	if ve.GeneralInfo != nil {
		venue.GeneralInfo = &domain.GeneralInfo{
			GeneralRule: ve.GeneralInfo.GeneralRule,
			ChildRule:   ve.GeneralInfo.ChildRule,
		}
	}
	return venue
}

func holderName(nh *nameHolder) *string {
	if nh == nil || nh.Name == "" {
		return nil
	}
	name := nh.Name
	return &name
}
