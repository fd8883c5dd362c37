package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-flyweight/composite"
	"github.com/goliatone/go-flyweight/flyweight"
)

// Period is the value of every calendar node. Weekday and renderer are only
// set on days.
type Period struct {
	Year  int
	Month time.Month
	Day   int

	Weekday  *flyweight.Intrinsic
	renderer *DayRenderer
}

// IsDay reports whether the period is a single day.
func (p Period) IsDay() bool { return p.Day > 0 }

// DayRenderer formats day leaves. One instance is shared by every day of a
// Calendar.
type DayRenderer struct {
	weekend map[string]bool
}

func newDayRenderer() *DayRenderer {
	return &DayRenderer{weekend: map[string]bool{
		time.Saturday.String(): true,
		time.Sunday.String():   true,
	}}
}

// Render returns the day line, for example "29 Thu" or "03 Sat *".
func (r *DayRenderer) Render(p Period) string {
	name, _ := p.Weekday.Field(1).(string)
	line := fmt.Sprintf("%02d %s", p.Day, name[:3])
	if r.weekend[name] {
		line += " *"
	}
	return line
}

// Calendar builds period trees backed by a shared weekday registry.
type Calendar struct {
	registry *flyweight.Registry
	renderer *DayRenderer
	logger   zerolog.Logger
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithRegistry shares weekday records with other users of registry.
func WithRegistry(r *flyweight.Registry) Option {
	return func(c *Calendar) { c.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calendar) { c.logger = l }
}

func New(opts ...Option) *Calendar {
	c := &Calendar{renderer: newDayRenderer(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = flyweight.NewRegistry(flyweight.WithRegistryLogger(c.logger))
	}
	return c
}

// Registry returns the registry holding weekday records.
func (c *Calendar) Registry() *flyweight.Registry { return c.registry }

// Renderer returns the shared day renderer.
func (c *Calendar) Renderer() *DayRenderer { return c.renderer }

// Year returns a branch per month under a branch for the year.
func (c *Calendar) Year(year int) (*composite.Branch[Period], error) {
	root := composite.NewBranch(fmt.Sprint(year), Period{Year: year})
	for m := time.January; m <= time.December; m++ {
		month, err := c.Month(year, m)
		if err != nil {
			return nil, err
		}
		if err := root.AddChild(month); err != nil {
			return nil, err
		}
	}
	c.logger.Debug().Int("year", year).Int("weekdays", c.registry.Len()).Msg("calendar year built")
	return root, nil
}

// Month returns a branch holding one leaf per day of the month.
func (c *Calendar) Month(year int, month time.Month) (*composite.Branch[Period], error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("calendar: invalid month %d", month)
	}
	branch := composite.NewBranch(month.String(), Period{Year: year, Month: month})
	for d := 1; d <= DaysIn(year, month); d++ {
		weekday := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday()
		intrinsic, err := c.registry.GetOrCreate("weekday", weekday.String())
		if err != nil {
			return nil, err
		}
		day := composite.NewLeaf(fmt.Sprint(d), Period{
			Year:     year,
			Month:    month,
			Day:      d,
			Weekday:  intrinsic,
			renderer: c.renderer,
		})
		if err := branch.AddChild(day); err != nil {
			return nil, err
		}
	}
	return branch, nil
}

// DaysIn returns the number of days in month, following the Gregorian leap
// year rule.
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Render lays out a tree built by a Calendar, one node per line, indented
// by depth.
func Render(root composite.Node[Period]) string {
	var sb strings.Builder
	composite.Walk(root, func(n composite.Node[Period], depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		if p := n.Value(); p.IsDay() && p.renderer != nil {
			sb.WriteString(p.renderer.Render(p))
		} else {
			sb.WriteString(n.Name())
		}
		sb.WriteByte('\n')
	})
	return sb.String()
}
