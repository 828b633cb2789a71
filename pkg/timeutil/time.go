package timeutil

import "time"

// Gateway date layouts
const (
	// RequestDateLayout is the outbound request date (YYYYMMDDHH)
	RequestDateLayout = "2006010215"

	// ResultDateLayout is the inbound result date (YYYYMMDD HHmmss)
	ResultDateLayout = "20060102 150405"
)

// Now returns the current local time
// The gateway expects request dates in the wall clock of the caller, not UTC
func Now() time.Time {
	return time.Now()
}

// FormatRequestDate formats t for the Date dataItem of an outbound request
// A zero t is replaced by the current time
func FormatRequestDate(t time.Time) string {
	if t.IsZero() {
		t = Now()
	}
	return t.Format(RequestDateLayout)
}

// ParseResultDate parses a Date dataItem from a gateway result in local time
func ParseResultDate(value string) (time.Time, error) {
	return time.ParseInLocation(ResultDateLayout, value, time.Local)
}
