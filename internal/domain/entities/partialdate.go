package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rePartialDate matches ISO partial dates: YYYY, YYYY-MM or YYYY-MM-DD.
// Years may be negative for before-epoch calendars.
var rePartialDate = regexp.MustCompile(`^(-?\d{1,5})(?:-(\d{2})(?:-(\d{2}))?)?$`)

// PartialDate is a calendar date with optional precision, used for births,
// deaths and marriages where worldbuilders often only know a year.
// The zero value means "unknown".
type PartialDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// ParsePartialDate parses an ISO partial date string ("1255", "1255-03",
// "1255-03-14"). An empty string parses to the zero (unknown) date.
func ParsePartialDate(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, nil
	}

	m := rePartialDate.FindStringSubmatch(s)
	if m == nil {
		return PartialDate{}, fmt.Errorf("invalid date %q (expected YYYY, YYYY-MM or YYYY-MM-DD)", s)
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return PartialDate{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	if year == 0 {
		return PartialDate{}, fmt.Errorf("invalid date %q: year 0 is reserved for unknown", s)
	}

	d := PartialDate{Year: year}
	if m[2] != "" {
		d.Month, _ = strconv.Atoi(m[2])
		if d.Month < 1 || d.Month > 12 {
			return PartialDate{}, fmt.Errorf("invalid month in %q", s)
		}
	}
	if m[3] != "" {
		d.Day, _ = strconv.Atoi(m[3])
		if d.Day < 1 || d.Day > 31 {
			return PartialDate{}, fmt.Errorf("invalid day in %q", s)
		}
	}
	return d, nil
}

// IsZero reports whether the date is unknown.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// String formats the date at its recorded precision. Unknown dates format
// as an empty string.
func (d PartialDate) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Month == 0 {
		return strconv.Itoa(d.Year)
	}
	if d.Day == 0 {
		return fmt.Sprintf("%d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other, comparing only
// at the precision both dates share. Unknown components never make a date
// "before" another.
func (d PartialDate) Before(other PartialDate) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month == 0 || other.Month == 0 {
		return false
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	if d.Day == 0 || other.Day == 0 {
		return false
	}
	return d.Day < other.Day
}

// YearsUntil returns the whole-year gap from d to other. Positive when
// other is later. Both dates must be known; callers check IsZero first.
func (d PartialDate) YearsUntil(other PartialDate) int {
	return other.Year - d.Year
}

// MonthsUntil returns the approximate month gap from d to other, treating
// a missing month as January. Used for twin detection where sub-year
// precision matters but exact days do not.
func (d PartialDate) MonthsUntil(other PartialDate) int {
	dm, om := d.Month, other.Month
	if dm == 0 {
		dm = 1
	}
	if om == 0 {
		om = 1
	}
	return (other.Year-d.Year)*12 + (om - dm)
}

// MarshalYAML encodes the date as its ISO string form.
func (d PartialDate) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes an ISO partial date string.
func (d *PartialDate) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParsePartialDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the date as its ISO string form.
func (d PartialDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON decodes an ISO partial date string.
func (d *PartialDate) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("partial date must be a JSON string: %w", err)
	}
	parsed, err := ParsePartialDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
