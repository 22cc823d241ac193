package dbtime

import (
	"strings"
	"sync"
	"time"

	"schooldesk_backend/internals/configs"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// SchoolLocation: SCHOOL_TIMEZONE (default Asia/Kolkata), fallback UTC.
func SchoolLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(configs.GetEnv("SCHOOL_TIMEZONE", "Asia/Kolkata"))
		l, err := time.LoadLocation(name)
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// ISODate: tanggal kalender UTC "YYYY-MM-DD" dari t.
func ISODate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// MonthWindow: hari pertama s/d hari terakhir bulan (keduanya inklusif, 00:00 UTC).
func MonthWindow(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// ParseMonth menerima "YYYY-MM" atau "YYYY-MM-DD".
func ParseMonth(s string) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if len(s) > 7 {
		s = s[:7]
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}

// StartOfDay dalam UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
