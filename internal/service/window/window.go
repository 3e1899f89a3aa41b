// Package window decides whether "now" is close enough to a reminder's
// scheduled time of day to record a dose, and renders the signed distance to it.
package window

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const DefaultActionWindowMinutes = 30

const notAvailableText = "not available"

// Remaining is the signed distance from now to today's occurrence of a
// scheduled time. SignedMinutes is positive while upcoming and negative once overdue.
type Remaining struct {
	SignedMinutes int    `json:"signed_minutes"`
	Hours         int    `json:"hours"`
	Minutes       int    `json:"minutes"`
	Overdue       bool   `json:"overdue"`
	Text          string `json:"text"`
}

// OccurrenceOn returns the instant of scheduled on now's calendar day.
func OccurrenceOn(scheduled string, now time.Time) (time.Time, error) {
	tod, err := domain.ParseTimeOfDay(scheduled)
	if err != nil {
		return time.Time{}, err
	}
	return tod.On(now), nil
}

// IsWithinActionWindow reports whether now lies within windowMinutes of
// today's occurrence of scheduled, bounds inclusive on both sides. A malformed
// scheduled time is never eligible.
func IsWithinActionWindow(scheduled string, now time.Time, windowMinutes int) bool {
	at, err := OccurrenceOn(scheduled, now)
	if err != nil {
		return false
	}

	diff := now.Sub(at)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(windowMinutes)*time.Minute
}

// TimeRemaining returns the display value for scheduled relative to now. ok is
// false when scheduled cannot be parsed; Text is then "not available".
func TimeRemaining(scheduled string, now time.Time) (Remaining, bool) {
	at, err := OccurrenceOn(scheduled, now)
	if err != nil {
		return Remaining{Text: notAvailableText}, false
	}

	// Minute granularity: seconds already elapsed in the current minute do not count.
	signed := int(at.Sub(now.Truncate(time.Minute)) / time.Minute)

	abs := signed
	if abs < 0 {
		abs = -abs
	}

	r := Remaining{
		SignedMinutes: signed,
		Hours:         abs / 60,
		Minutes:       abs % 60,
		Overdue:       signed < 0,
	}
	r.Text = r.format()

	return r, true
}

func (r Remaining) format() string {
	if r.SignedMinutes == 0 {
		return "due now"
	}

	var span string
	if r.Hours > 0 {
		span = fmt.Sprintf("%dh %dm", r.Hours, r.Minutes)
	} else {
		span = fmt.Sprintf("%dm", r.Minutes)
	}

	if r.Overdue {
		return span + " overdue"
	}
	return "in " + span
}
