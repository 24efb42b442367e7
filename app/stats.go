package app

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focusring/internal/models"
	"github.com/ayoisaiah/focusring/internal/timeutil"
	"github.com/ayoisaiah/focusring/internal/ui"
)

const untagged = "untagged"

type tagStats struct {
	Tag          string `json:"tag"`
	Sessions     int    `json:"sessions"`
	FocusSeconds int    `json:"focus_seconds"`
}

type stats struct {
	Tags           []tagStats     `json:"tags"`
	Profile        models.Profile `json:"profile"`
	Sessions       int            `json:"sessions"`
	FocusSeconds   int            `json:"focus_seconds"`
	LongestSeconds int            `json:"longest_seconds"`
	Coins          int            `json:"coins"`
	XP             int            `json:"xp"`
	CountdownShare float64        `json:"countdown_share"`
	AverageSeconds int            `json:"average_seconds"`
}

// computeStats summarises sessions. Tags are ordered naturally so that
// "chapter 2" comes before "chapter 10".
func computeStats(sessions []models.Session, p models.Profile) stats {
	s := stats{
		Profile:  p,
		Sessions: len(sessions),
	}

	byTag := make(map[string]*tagStats)

	var countdowns int

	for i := range sessions {
		sess := sessions[i]

		s.FocusSeconds += sess.DurationSeconds
		s.Coins += sess.Coins
		s.XP += sess.XP
		s.LongestSeconds = max(s.LongestSeconds, sess.DurationSeconds)

		if sess.Mode == "countdown" {
			countdowns++
		}

		tag := sess.ActivityTag
		if tag == "" {
			tag = untagged
		}

		t, ok := byTag[tag]
		if !ok {
			t = &tagStats{Tag: tag}
			byTag[tag] = t
		}

		t.Sessions++
		t.FocusSeconds += sess.DurationSeconds
	}

	if s.Sessions > 0 {
		s.AverageSeconds = s.FocusSeconds / s.Sessions
		s.CountdownShare = float64(countdowns) / float64(s.Sessions)
	}

	for _, t := range byTag {
		s.Tags = append(s.Tags, *t)
	}

	slices.SortFunc(s.Tags, func(a, b tagStats) int {
		switch {
		case natural.Less(a.Tag, b.Tag):
			return -1
		case natural.Less(b.Tag, a.Tag):
			return 1
		}

		return 0
	})

	return s
}

func printStats(w io.Writer, s stats) {
	summary := [][]string{
		{"Sessions", strconv.Itoa(s.Sessions)},
		{"Focus time", ui.Highlight(timeutil.HumanMinutes(s.FocusSeconds))},
		{"Average session", timeutil.HumanMinutes(s.AverageSeconds)},
		{"Longest session", timeutil.HumanMinutes(s.LongestSeconds)},
		{"Countdown sessions", fmt.Sprintf("%.0f%%", s.CountdownShare*100)},
		{"Coins earned", ui.Yellow(strconv.Itoa(s.Coins))},
		{"XP earned", ui.Cyan(strconv.Itoa(s.XP))},
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Summary"))
	ui.PrintTable(w, []string{"", "PERIOD"}, summary)

	if len(s.Tags) > 0 {
		rows := make([][]string, len(s.Tags))

		for i, t := range s.Tags {
			rows[i] = []string{
				t.Tag,
				strconv.Itoa(t.Sessions),
				ui.Green(timeutil.HumanMinutes(t.FocusSeconds)),
			}
		}

		fmt.Fprintln(w, pterm.DefaultSection.Sprint("Activities"))
		ui.PrintTable(w, []string{"TAG", "SESSIONS", "FOCUS TIME"}, rows)
	}

	profile := [][]string{
		{"Sessions", strconv.Itoa(s.Profile.Sessions)},
		{"Focus time", timeutil.HumanMinutes(s.Profile.FocusSeconds)},
		{"Coins", ui.Yellow(strconv.Itoa(s.Profile.Coins))},
		{"XP", ui.Cyan(strconv.Itoa(s.Profile.XP))},
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("All time"))
	ui.PrintTable(w, []string{"", "TOTAL"}, profile)
}
