package uv

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// UVI is a UV index value as reported by the sensor backend. The backend is
// not consistent about types: readings arrive as JSON numbers or as strings,
// and occasionally as garbage. Values that fail to parse decode as 0 so that
// one bad record cannot poison sums and averages.
type UVI float64

func (u *UVI) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			*u = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v != v { // reject NaN
		*u = 0
		return nil
	}
	if v < 0 {
		v = 0
	}
	*u = UVI(v)
	return nil
}

// Reading is one sensor observation. Date and Time are kept as the raw
// strings the backend sends; identity and ordering are derived from them.
type Reading struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	UVI   UVI    `json:"uvi"`
	Level string `json:"level,omitempty"`

	// FormattedDateTime is presentational only, computed once when the
	// reading enters the store. Never used for sorting or filtering.
	FormattedDateTime string `json:"formattedDateTime,omitempty"`
}

// Key returns the identity of the observation. Two readings with the same
// key are the same logical observation.
func (r Reading) Key() string {
	return r.Date + "|" + r.Time
}

// timeLayouts the backend has been observed to use for the time field.
var timeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04"}

// Instant combines Date and Time into a single comparable instant in the
// given location. Readings with an unparseable time sort at that date's
// midnight rather than being dropped.
func (r Reading) Instant(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	combined := r.Date + " " + r.Time
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, combined, loc); err == nil {
			return ts
		}
	}
	if ts, err := time.ParseInLocation("2006-01-02", r.Date, loc); err == nil {
		return ts
	}
	return time.Time{}
}

// Before reports whether r is chronologically before other.
func (r Reading) Before(other Reading, loc *time.Location) bool {
	return r.Instant(loc).Before(other.Instant(loc))
}

// FormatDateTime renders a reading's date and time for display, e.g.
// "Jan 2, 2024, 3:04 PM". Falls back to the raw strings when unparseable.
func FormatDateTime(date, timeOfDay string, loc *time.Location) string {
	r := Reading{Date: date, Time: timeOfDay}
	ts := r.Instant(loc)
	if ts.IsZero() {
		return strings.TrimSpace(date + " " + timeOfDay)
	}
	return ts.Format("Jan 2, 2006, 3:04 PM")
}

// DateOf returns the calendar date string for a timestamp, in the reading
// date format.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

var _ json.Unmarshaler = (*UVI)(nil)
