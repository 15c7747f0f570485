// Package services: services/calendar_service.go
package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/skip2/go-qrcode"

	"chapel-site/models"
)

// EventICS renders a single-event iCalendar file for the "add to calendar"
// button. Permanent entries carry no date, so the next occurrence is taken
// as today at the event's time; dated entries use their stored date.
func EventICS(event models.Event) (string, error) {
	start, err := eventStart(event)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	entry := cal.AddEvent(fmt.Sprintf("%s@chapel-site", event.ID))
	entry.SetCreatedTime(nowFunc())
	entry.SetDtStampTime(nowFunc())
	entry.SetStartAt(start)
	entry.SetEndAt(start.Add(time.Hour))
	entry.SetSummary(event.Title)
	if event.Description != "" {
		entry.SetDescription(event.Description)
	}

	return cal.Serialize(), nil
}

// EventQRCode encodes the event's calendar URL as a PNG, sized per the
// requested width.
func EventQRCode(calendarURL string, size int) ([]byte, error) {
	png, err := qrcode.Encode(calendarURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

func eventStart(event models.Event) (time.Time, error) {
	at, err := time.Parse("15:04", event.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad event time %q: %w", event.Time, err)
	}

	day := nowFunc()
	if event.Date != "" {
		day, err = time.Parse("2006-01-02", event.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad event date %q: %w", event.Date, err)
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, time.Local), nil
}
