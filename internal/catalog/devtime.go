package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDevTime is returned for development times that cannot be read.
var ErrInvalidDevTime = errors.New("invalid development time")

// Unit is a development time unit.
type Unit int

const (
	Hours Unit = iota
	Days
	Weeks
	Months
	Years
)

var unitNames = map[Unit][2]string{
	Hours:  {"hour", "hours"},
	Days:   {"day", "days"},
	Weeks:  {"week", "weeks"},
	Months: {"month", "months"},
	Years:  {"year", "years"},
}

var unitAliases = invertAliases(map[Unit][]string{
	Hours:  {"h", "hr", "hrs", "hour", "hours"},
	Days:   {"d", "day", "days"},
	Weeks:  {"w", "wk", "wks", "week", "weeks"},
	Months: {"mo", "mos", "month", "months"},
	Years:  {"y", "yr", "yrs", "year", "years"},
})

func invertAliases(byUnit map[Unit][]string) map[string]Unit {
	m := make(map[string]Unit)
	for u, names := range byUnit {
		for _, name := range names {
			m[name] = u
		}
	}
	return m
}

// hours per unit, months and years averaged.
var unitHours = map[Unit]float64{
	Hours:  1,
	Days:   24,
	Weeks:  24 * 7,
	Months: 24 * 30.44,
	Years:  24 * 365.25,
}

// DevTime is how long a project took, as written on a case study
// ("48 hours", "~3 months").
type DevTime struct {
	Amount      int
	Unit        Unit
	Approximate bool
}

// ParseDevTime reads strings like "48 hours", "2 weeks", "~6 mos" or "1yr".
func ParseDevTime(s string) (DevTime, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	var dt DevTime
	if strings.HasPrefix(raw, "~") {
		dt.Approximate = true
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return DevTime{}, fmt.Errorf("%w: %q", ErrInvalidDevTime, s)
	}

	split := 0
	for split < len(raw) && raw[split] >= '0' && raw[split] <= '9' {
		split++
	}
	if split == 0 {
		return DevTime{}, fmt.Errorf("%w: %q has no amount", ErrInvalidDevTime, s)
	}
	amount, err := strconv.Atoi(raw[:split])
	if err != nil || amount <= 0 {
		return DevTime{}, fmt.Errorf("%w: %q", ErrInvalidDevTime, s)
	}
	unit, ok := unitAliases[strings.TrimSpace(raw[split:])]
	if !ok {
		return DevTime{}, fmt.Errorf("%w: unknown unit in %q", ErrInvalidDevTime, s)
	}
	dt.Amount = amount
	dt.Unit = unit
	return dt, nil
}

// Hours converts the development time to hours.
func (d DevTime) Hours() float64 {
	return float64(d.Amount) * unitHours[d.Unit]
}

func (d DevTime) String() string {
	names := unitNames[d.Unit]
	name := names[1]
	if d.Amount == 1 {
		name = names[0]
	}
	prefix := ""
	if d.Approximate {
		prefix = "~"
	}
	return fmt.Sprintf("%s%d %s", prefix, d.Amount, name)
}

// FormatDevTime normalizes s for display, returning s unchanged when it
// cannot be parsed.
func FormatDevTime(s string) string {
	dt, err := ParseDevTime(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return dt.String()
}
