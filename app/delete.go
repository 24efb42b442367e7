package app

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focusring/internal/models"
)

type sessionDeleter interface {
	DeleteSessions(sessions []models.Session) error
}

// delSessions deletes all the specified sessions. It requests for
// confirmation before proceeding with the operation.
func delSessions(
	db sessionDeleter,
	sessions []models.Session,
	in io.Reader,
	out io.Writer,
) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(out, sessions)

	warning := pterm.Warning.Sprint(
		"The above sessions will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(out, warning)

	reader := bufio.NewReader(in)

	_, _ = reader.ReadString('\n')

	return db.DeleteSessions(sessions)
}
