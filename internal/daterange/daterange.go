package daterange

import (
	"fmt"
	"time"
)

// TimeZone pins the day boundary for every user of the dashboard regardless
// of where it is opened.
const TimeZone = "America/Bogota"

const outFormat = "02/01/2006"

// Option is one symbolic date-range choice offered by the selector.
type Option struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Days   int    `json:"days"`
	Custom bool   `json:"isCustom,omitempty"`
}

var Options = []Option{
	{Label: "Hoy", Value: "today", Days: 0},
	{Label: "Ayer", Value: "yesterday", Days: 1},
	{Label: "Últimos 7 días", Value: "7days", Days: 7},
	{Label: "Últimos 15 días", Value: "15days", Days: 15},
	{Label: "Último mes", Value: "1month", Days: 30},
	{Label: "Personalizado", Value: "custom", Custom: true},
}

type Resolver struct {
	loc *time.Location
	now func() time.Time
}

func NewResolver() (*Resolver, error) {
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load zone %s: %w", TimeZone, err)
	}
	return &Resolver{loc: loc, now: time.Now}, nil
}

// NewResolverAt fixes "now" for tests.
func NewResolverAt(now func() time.Time) (*Resolver, error) {
	r, err := NewResolver()
	if err != nil {
		return nil, err
	}
	r.now = now
	return r, nil
}

// Resolve turns a symbolic option value, plus a yyyy-MM-dd literal when the
// option is custom, into the dd/MM/yyyy string the upstream webhook expects.
func (r *Resolver) Resolve(value, customDate string) (string, error) {
	opt, ok := lookup(value)
	if !ok {
		return "", fmt.Errorf("unknown date option %q", value)
	}

	target := r.now().In(r.loc)
	switch {
	case opt.Custom:
		d, err := time.Parse("2006-01-02", customDate)
		if err != nil {
			return "", fmt.Errorf("custom date %q: %w", customDate, err)
		}
		// rebuild from the y/m/d components at zone-local midnight so the
		// UTC shift cannot move the calendar day
		target = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, r.loc)
	case opt.Days > 0:
		target = target.AddDate(0, 0, -opt.Days)
	}

	return target.Format(outFormat), nil
}

func lookup(value string) (Option, bool) {
	for _, o := range Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
