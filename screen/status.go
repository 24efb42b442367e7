package screen

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/ayoisaiah/focusring/timer"
)

// Status is the snapshot of a running session written for `focusring status`.
type Status struct {
	StartTime        time.Time `json:"start_time"`
	UpdatedAt        time.Time `json:"updated_at"`
	Phase            string    `json:"phase"`
	Mode             string    `json:"mode"`
	Tag              string    `json:"tag"`
	RemainingSeconds int       `json:"remaining_seconds"`
	ElapsedSeconds   int       `json:"elapsed_seconds"`
	GraceSeconds     int       `json:"grace_seconds"`
}

func newStatus(s timer.State, tag string, now time.Time) Status {
	return Status{
		Phase:            s.Phase.String(),
		Mode:             s.Mode.String(),
		Tag:              tag,
		StartTime:        s.StartWallClock,
		UpdatedAt:        now,
		RemainingSeconds: s.RemainingSeconds,
		ElapsedSeconds:   s.ElapsedSeconds,
		GraceSeconds:     s.GraceRemainingSeconds,
	}
}

// Seconds returns the seconds to display for the session: time left for a
// countdown, time spent for a stopwatch. It accounts for the time since the
// snapshot was written.
func (s *Status) Seconds(now time.Time) int {
	since := int(now.Sub(s.UpdatedAt) / time.Second)
	if since < 0 || s.Phase != timer.Running.String() {
		since = 0
	}

	if s.Mode == timer.Stopwatch.String() {
		return s.ElapsedSeconds + since
	}

	return max(s.RemainingSeconds-since, 0)
}

func writeStatusFile(path string, s Status) (err error) {
	statusFile, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil && err == nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

func removeStatusFile(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// ReadStatus returns the last snapshot written by a running session. ok is
// false when no session is in progress.
func ReadStatus(path string) (s Status, ok bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		// a missing file means nothing is running
		if errors.Is(err, os.ErrNotExist) {
			return Status{}, false, nil
		}

		return Status{}, false, err
	}

	err = json.Unmarshal(b, &s)
	if err != nil {
		return Status{}, false, err
	}

	return s, true, nil
}
