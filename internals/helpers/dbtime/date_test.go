package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	first, last := MonthWindow(2024, time.February)
	assert.Equal(t, "2024-02-01", first.Format(DateLayout))
	assert.Equal(t, "2024-02-29", last.Format(DateLayout))

	first, last = MonthWindow(2023, time.December)
	assert.Equal(t, "2023-12-01", first.Format(DateLayout))
	assert.Equal(t, "2023-12-31", last.Format(DateLayout))
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)

	_, _, err = ParseMonth("March")
	assert.Error(t, err)
}

func TestISODateUsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 2024-03-02 02:00 IST == 2024-03-01 20:30 UTC
	at := time.Date(2024, 3, 2, 2, 0, 0, 0, ist)
	assert.Equal(t, "2024-03-01", ISODate(at))
}

func TestDateJSONAndScan(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-07-09T00:00:00.000Z"`)))
	assert.Equal(t, "2024-07-09", d.String())

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-09"`, string(b))

	var zero Date
	b, _ = zero.MarshalJSON()
	assert.Equal(t, "null", string(b))

	require.NoError(t, d.Scan("2020-01-31"))
	v, _ := d.Value()
	assert.Equal(t, "2020-01-31", v)
}

func TestSchoolLocationLoadedOnce(t *testing.T) {
	loc := SchoolLocation()
	require.NotNil(t, loc)
	assert.Same(t, loc, SchoolLocation())
	_, err := time.LoadLocation(loc.String())
	assert.NoError(t, err)
}
