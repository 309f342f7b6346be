package discord

import (
	"fmt"
	"strings"
	"time"

	"draftbot/internal/domain"
	"draftbot/pkg/tz"
)

// ParseEventDateTime parses date (DD/MM/YYYY) and time (HH:MM) in the league
// timezone. Returns an error if the format is invalid or the instant is in
// the past.
func ParseEventDateTime(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, fmt.Errorf("date and time required (DD/MM/YYYY and HH:MM)")
	}
	tDate, err := time.Parse("02/01/2006", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (expected DD/MM/YYYY, e.g. 15/02/2026)")
	}
	tTime, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time (expected HH:MM, e.g. 19:30)")
	}
	dt := time.Date(tDate.Year(), tDate.Month(), tDate.Day(),
		tTime.Hour(), tTime.Minute(), 0, 0, tz.Location)
	if dt.Before(time.Now()) {
		return time.Time{}, domain.ErrDateTimeInPast
	}
	return dt, nil
}

// FormatEventDateTime renders an instant in the league timezone.
func FormatEventDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.Location).Format("02/01/2006 at 15:04")
}
