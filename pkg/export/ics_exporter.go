package export

import (
	"bytes"
	"fmt"
	"time"

	ical "github.com/emersion/go-ical"
)

// CalendarEvent is one timed entry destined for an iCalendar feed.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// ICSExporter serialises events into an iCalendar document that any
// calendar client can subscribe to or import.
type ICSExporter struct {
	prodID string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter(prodID string) *ICSExporter {
	if prodID == "" {
		prodID = "-//studyplan//studyplan-api//EN"
	}
	return &ICSExporter{prodID: prodID}
}

// Render encodes the events as an iCalendar (RFC 5545) byte stream.
func (e *ICSExporter) Render(events []CalendarEvent) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, e.prodID)

	now := time.Now().UTC()
	for _, item := range events {
		if !item.End.After(item.Start) {
			return nil, fmt.Errorf("event %s has an empty time range", item.UID)
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, item.UID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, item.Start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, item.End)
		event.Props.SetText(ical.PropSummary, item.Summary)
		if item.Description != "" {
			event.Props.SetText(ical.PropDescription, item.Description)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	buf := &bytes.Buffer{}
	if err := ical.NewEncoder(buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode ics: %w", err)
	}
	return buf.Bytes(), nil
}
