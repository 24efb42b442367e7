package app

import (
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focusring/internal/models"
	"github.com/ayoisaiah/focusring/internal/timeutil"
	"github.com/ayoisaiah/focusring/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	dateLayout    = "Jan 02, 2006 03:04 PM"
)

// printSessionsTable prints a session table to w.
func printSessionsTable(w io.Writer, sessions []models.Session) {
	rows := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		rows[i] = []string{
			strconv.Itoa(i + 1),
			sess.StartTime.Format(dateLayout),
			sess.EndTime.Format(dateLayout),
			ui.Highlight(timeutil.HumanMinutes(sess.DurationSeconds)),
			sess.ActivityTag,
			sess.Mode,
			ui.Yellow(strconv.Itoa(sess.Coins)),
			ui.Cyan(strconv.Itoa(sess.XP)),
		}
	}

	ui.PrintTable(
		w,
		[]string{"#", "START DATE", "END DATE", "DURATION", "TAG", "MODE", "COINS", "XP"},
		rows,
	)
}

// listSessions prints out a table of sessions.
func listSessions(w io.Writer, sessions []models.Session) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(w, sessions)

	return nil
}
