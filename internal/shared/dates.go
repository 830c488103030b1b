package shared

import "time"

// dateLayout is the only calendar-date format accepted in request and
// response bodies.
const dateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD calendar date. Out-of-range days or
// months and non-numeric input are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// YearsSince returns the whole number of 365.25-day years between the given
// date and the current UTC time, or nil when no date is given. The date must
// already have been validated with ParseDate.
func YearsSince(s *string) *int {
	if s == nil || *s == "" {
		return nil
	}
	start, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	days := time.Now().UTC().Sub(start).Hours() / 24
	years := int(days / 365.25)
	return &years
}
