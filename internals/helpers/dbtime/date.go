package dbtime

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date: kolom DATE Postgres ("YYYY-MM-DD"), tanpa jam & zona.
type Date struct{ time.Time }

func NewDate(t time.Time) Date {
	return Date{Time: StartOfDay(t)}
}

func ParseDate(s string) (Date, error) {
	var d Date
	return d, d.parse(s)
}

func (d *Date) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	// toleransi: "2024-03-01T00:00:00Z" dari FE
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		d.Time = StartOfDay(x)
		return nil
	case []byte:
		return d.parse(string(x))
	case string:
		return d.parse(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("date: unsupported Scan type %T", v)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (d Date) GormDataType() string { return "date" }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		d.Time = time.Time{}
		return nil
	}
	uq, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return d.parse(uq)
}
