package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimePeriod is either an instant (Start == End) or a closed period. The
// zero value is an empty period that extends to whatever it is merged with.
type TimePeriod struct {
	Start time.Time
	End   time.Time
}

func NewInstant(t time.Time) TimePeriod {
	return TimePeriod{Start: t.UTC(), End: t.UTC()}
}

func NewPeriod(start, end time.Time) TimePeriod {
	if end.Before(start) {
		start, end = end, start
	}
	return TimePeriod{Start: start.UTC(), End: end.UTC()}
}

func (p TimePeriod) IsEmpty() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

func (p TimePeriod) IsInstant() bool {
	return !p.IsEmpty() && p.Start.Equal(p.End)
}

// ExtendToContain widens p so that it covers other as well
func (p *TimePeriod) ExtendToContain(other TimePeriod) {
	if other.IsEmpty() {
		return
	}
	if p.IsEmpty() {
		*p = other
		return
	}
	if other.Start.Before(p.Start) {
		p.Start = other.Start
	}
	if other.End.After(p.End) {
		p.End = other.End
	}
}

func (p TimePeriod) Contains(other TimePeriod) bool {
	if other.IsEmpty() {
		return true
	}
	if p.IsEmpty() {
		return false
	}
	return !other.Start.Before(p.Start) && !other.End.After(p.End)
}

func (p TimePeriod) Equal(other TimePeriod) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

// String renders the period the way it is accepted in KVP requests
func (p TimePeriod) String() string {
	if p.IsEmpty() {
		return ""
	}
	if p.IsInstant() {
		return p.Start.Format(time.RFC3339Nano)
	}
	return p.Start.Format(time.RFC3339Nano) + "/" + p.End.Format(time.RFC3339Nano)
}

// ParseTimePeriod accepts a single ISO8601 instant or a start/end pair
// separated by a slash
func ParseTimePeriod(s string) (TimePeriod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimePeriod{}, fmt.Errorf("empty time value")
	}

	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		t, err := parseTime(parts[0])
		if err != nil {
			return TimePeriod{}, err
		}
		return NewInstant(t), nil
	case 2:
		start, err := parseTime(parts[0])
		if err != nil {
			return TimePeriod{}, err
		}
		end, err := parseTime(parts[1])
		if err != nil {
			return TimePeriod{}, err
		}
		if end.Before(start) {
			return TimePeriod{}, fmt.Errorf("period end %s is before its start %s", parts[1], parts[0])
		}
		return NewPeriod(start, end), nil
	}

	return TimePeriod{}, fmt.Errorf("malformed time value %q", s)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time %q", s)
}
