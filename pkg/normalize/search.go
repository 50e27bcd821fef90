package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/eventscout/eventscout/pkg/domain"
)

type searchEnvelope struct {
	Embedded struct {
		Events []json.RawMessage `json:"events"`
	} `json:"_embedded"`
}

type searchEvent struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Classifications []struct {
		Segment nameHolder `json:"segment"`
	} `json:"classifications"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []nameHolder `json:"venues"`
	} `json:"_embedded"`
	Seatmap struct {
		StaticURL string `json:"staticUrl"`
	} `json:"seatmap"`
}

// SearchEvents converts a raw search payload into summaries ordered by
// start time, with undated events after all dated ones. A payload with
// no _embedded container yields an empty slice, not an error. Entries
// without an id are dropped.
func SearchEvents(raw []byte) ([]domain.EventSummary, error) {
	var env searchEnvelope
	if err := lenientUnmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}

	out := make([]domain.EventSummary, 0, len(env.Embedded.Events))
	for _, rawEvent := range env.Embedded.Events {
		var ev searchEvent
		if err := lenientUnmarshal(rawEvent, &ev); err != nil {
			continue
		}
		if ev.ID == "" {
			continue
		}

		summary := domain.EventSummary{
			ID:            ev.ID,
			Name:          ev.Name,
			CategoryLabel: placeholder,
			VenueName:     placeholder,
			SeatmapURL:    ev.Seatmap.StaticURL,
		}
		if len(ev.Classifications) > 0 && ev.Classifications[0].Segment.Name != "" {
			summary.CategoryLabel = ev.Classifications[0].Segment.Name
		}
		if len(ev.Embedded.Venues) > 0 && ev.Embedded.Venues[0].Name != "" {
			summary.VenueName = ev.Embedded.Venues[0].Name
		}
		if len(ev.Images) > 0 {
			summary.ImageURL = ev.Images[0].URL
		}
		summary.DateTimeLabel, summary.SortKey = formatEventDate(ev.Dates.Start.LocalDate, ev.Dates.Start.LocalTime)

		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortKey, out[j].SortKey
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return out, nil
}

// formatEventDate builds the display label and the sort key. No local
// date means an empty label and no sort key; a date without a time gets
// a date-only label and sorts at midnight.
func formatEventDate(localDate, localTime string) (string, *time.Time) {
	if localDate == "" {
		return "", nil
	}
	day, err := time.Parse("2006-01-02", localDate)
	if err != nil {
		return "", nil
	}
	if localTime == "" {
		return day.Format("Jan 2, 2006"), &day
	}
	clock, err := time.Parse("15:04:05", localTime)
	if err != nil {
		return day.Format("Jan 2, 2006"), &day
	}
	dt := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
	return dt.Format("Jan 2, 2006, 3:04 PM"), &dt
}
