package config

import (
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusring/internal/timeutil"
)

// FilterConfig selects sessions in the ledger by their start time, end time,
// and activity tag.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Tags      []string
}

// FilterOptions are the raw filter flags.
type FilterOptions struct {
	Period string
	Since  string
	Until  string
	Tags   string
}

// Filter builds a FilterConfig from the list and stats command flags.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	return NewFilter(FilterOptions{
		Period: ctx.String("period"),
		Since:  ctx.String("since"),
		Until:  ctx.String("until"),
		Tags:   ctx.String("tag"),
	}, time.Now())
}

// NewFilter builds a FilterConfig relative to now. Without any bounds the
// filter covers today. Since and Until accept absolute dates as well as
// natural language such as "3 days ago" or "last monday".
func NewFilter(opts FilterOptions, now time.Time) (*FilterConfig, error) {
	f := &FilterConfig{}

	if opts.Tags != "" {
		f.Tags = splitAndTrimTags(opts.Tags)
	}

	period := timeutil.Period(strings.TrimSpace(opts.Period))

	if period != "" {
		if !slices.Contains(timeutil.PeriodCollection, period) {
			return nil, errInvalidPeriod.Fmt(period)
		}

		f.StartTime, f.EndTime, _ = period.Bounds(now)

		return f, nil
	}

	f.StartTime = timeutil.RoundToStart(now)
	f.EndTime = now

	if opts.Since != "" {
		t, err := parseDate(opts.Since, now)
		if err != nil {
			return nil, errInvalidStartDate.Fmt(opts.Since)
		}

		f.StartTime = t

		if t.After(now) {
			f.EndTime = timeutil.RoundToEnd(t)
		}
	}

	if opts.Until != "" {
		t, err := parseDate(opts.Until, now)
		if err != nil {
			return nil, errInvalidEndDate.Fmt(opts.Until)
		}

		f.EndTime = t
	}

	if f.EndTime.Before(f.StartTime) {
		return nil, errInvalidDateRange
	}

	return f, nil
}

func parseDate(s string, now time.Time) (time.Time, error) {
	d, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}, s)
	if err != nil {
		return time.Time{}, err
	}

	return d.Time, nil
}

// splitAndTrimTags splits a comma-separated tag string and trims whitespace.
func splitAndTrimTags(tags string) []string {
	split := strings.Split(tags, ",")

	trimmed := make([]string, 0, len(split))

	for _, tag := range split {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			trimmed = append(trimmed, tag)
		}
	}

	return trimmed
}
