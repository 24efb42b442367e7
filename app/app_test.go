package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusring/internal/config"
	"github.com/ayoisaiah/focusring/internal/logging"
	"github.com/ayoisaiah/focusring/internal/models"
	"github.com/ayoisaiah/focusring/internal/testutil"
	"github.com/ayoisaiah/focusring/screen"
	"github.com/ayoisaiah/focusring/store"
	"github.com/ayoisaiah/focusring/timer"
)

type recordingSubmitter struct {
	err    error
	calls  []timer.FinalizedSession
	reward timer.Reward
}

func (r *recordingSubmitter) SubmitSession(
	_ context.Context,
	sess timer.FinalizedSession,
) (timer.Reward, error) {
	r.calls = append(r.calls, sess)

	if r.err != nil {
		return timer.Reward{}, r.err
	}

	return r.reward, nil
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "vim", firstNonEmptyString("", "vim", "nano"))
	assert.Equal(t, "", firstNonEmptyString("", ""))
}

func TestMirror(t *testing.T) {
	sess := timer.FinalizedSession{ID: "abc", DurationSeconds: 1500}
	log := logging.NewWithWriter(io.Discard, 0)

	t.Run("remote reward wins", func(t *testing.T) {
		ledger := &recordingSubmitter{reward: timer.Reward{Coins: 1}}
		rem := &recordingSubmitter{reward: timer.Reward{Coins: 30, XP: 300}}

		m := &mirror{remote: rem, ledger: ledger, log: log}

		reward, err := m.SubmitSession(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, timer.Reward{Coins: 30, XP: 300}, reward)
		assert.Len(t, ledger.calls, 1)
		assert.Len(t, rem.calls, 1)
	})

	t.Run("local failure is not fatal", func(t *testing.T) {
		ledger := &recordingSubmitter{err: errors.New("disk full")}
		rem := &recordingSubmitter{reward: timer.Reward{Coins: 30}}

		m := &mirror{remote: rem, ledger: ledger, log: log}

		reward, err := m.SubmitSession(context.Background(), sess)
		require.NoError(t, err)
		assert.Equal(t, 30, reward.Coins)
	})

	t.Run("remote failure is reported", func(t *testing.T) {
		ledger := &recordingSubmitter{}
		rem := &recordingSubmitter{err: errors.New("503")}

		m := &mirror{remote: rem, ledger: ledger, log: log}

		_, err := m.SubmitSession(context.Background(), sess)
		require.Error(t, err)
		assert.Len(t, ledger.calls, 1)
	})
}

func TestNewSubmitter(t *testing.T) {
	log := logging.NewWithWriter(io.Discard, 0)
	ledger := &recordingSubmitter{}

	t.Setenv("FOCUS_UPLOAD_URL", "")
	t.Setenv("FOCUS_UPLOAD_TIMEOUT", "5s")

	s, err := newSubmitter(ledger, log)
	require.NoError(t, err)
	assert.Same(t, ledger, s)

	t.Setenv("FOCUS_UPLOAD_URL", "https://example.com/sessions")

	s, err = newSubmitter(ledger, log)
	require.NoError(t, err)
	assert.IsType(t, &mirror{}, s)
}

func TestRunSessionCmd(t *testing.T) {
	testutil.SkipOnWindows(t)

	ctx := context.Background()

	require.NoError(t, runSessionCmd(ctx, ""))
	require.NoError(t, runSessionCmd(ctx, "true"))
	require.Error(t, runSessionCmd(ctx, "false"))
	require.Error(t, runSessionCmd(ctx, `echo "unterminated`))
}

func TestPolicy(t *testing.T) {
	cfg := &config.Config{
		Timer: config.TimerConfig{
			DefaultMode:     "stopwatch",
			Grace:           5 * time.Second,
			MaxSession:      2 * time.Hour,
			DefaultDuration: 50 * time.Minute,
		},
	}

	p, err := policy(cfg)
	require.NoError(t, err)

	want := timer.Policy{
		Grace:           5 * time.Second,
		MaxSession:      2 * time.Hour,
		DefaultDuration: 50 * time.Minute,
		DefaultMode:     timer.Stopwatch,
	}

	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("policy mismatch (-want +got):\n%s", diff)
	}

	cfg.Timer.DefaultMode = "pomodoro"

	_, err = policy(cfg)
	require.Error(t, err)
}

func TestComputeStats(t *testing.T) {
	sessions := []models.Session{
		{ActivityTag: "chapter 10", Mode: "countdown", DurationSeconds: 1500, Coins: 25, XP: 312},
		{ActivityTag: "chapter 2", Mode: "stopwatch", DurationSeconds: 600, Coins: 10, XP: 100},
		{ActivityTag: "", Mode: "countdown", DurationSeconds: 300, Coins: 5, XP: 50},
		{ActivityTag: "chapter 2", Mode: "countdown", DurationSeconds: 1200, Coins: 20, XP: 200},
	}

	profile := models.Profile{Sessions: 40, Coins: 900}

	s := computeStats(sessions, profile)

	assert.Equal(t, 4, s.Sessions)
	assert.Equal(t, 3600, s.FocusSeconds)
	assert.Equal(t, 900, s.AverageSeconds)
	assert.Equal(t, 1500, s.LongestSeconds)
	assert.Equal(t, 60, s.Coins)
	assert.Equal(t, 662, s.XP)
	assert.InDelta(t, 0.75, s.CountdownShare, 1e-9)
	assert.Equal(t, profile, s.Profile)

	want := []tagStats{
		{Tag: "chapter 2", Sessions: 2, FocusSeconds: 1800},
		{Tag: "chapter 10", Sessions: 1, FocusSeconds: 1500},
		{Tag: untagged, Sessions: 1, FocusSeconds: 300},
	}

	if diff := cmp.Diff(want, s.Tags); diff != "" {
		t.Fatalf("tag stats mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(nil, models.Profile{})

	assert.Zero(t, s.AverageSeconds)
	assert.Empty(t, s.Tags)
}

type fakeDeleter struct {
	deleted []models.Session
}

func (f *fakeDeleter) DeleteSessions(sessions []models.Session) error {
	f.deleted = append(f.deleted, sessions...)
	return nil
}

func TestDelSessions(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{
			ID:              "a",
			ActivityTag:     "writing",
			StartTime:       start,
			EndTime:         start.Add(25 * time.Minute),
			DurationSeconds: 1500,
		},
	}

	var out bytes.Buffer

	db := &fakeDeleter{}

	err := delSessions(db, sessions, strings.NewReader("\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, sessions, db.deleted)
	assert.Contains(t, out.String(), "writing")

	db = &fakeDeleter{}

	require.NoError(t, delSessions(db, nil, strings.NewReader("\n"), &out))
	assert.Empty(t, db.deleted)
}

func TestStatusLine(t *testing.T) {
	now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status screen.Status
		want   string
	}{
		{
			name: "countdown",
			status: screen.Status{
				Phase:            "running",
				Mode:             "countdown",
				Tag:              "writing",
				UpdatedAt:        now.Add(-30 * time.Second),
				RemainingSeconds: 600,
			},
			want: "[countdown: writing]: 09:30",
		},
		{
			name: "stopwatch",
			status: screen.Status{
				Phase:          "running",
				Mode:           "stopwatch",
				UpdatedAt:      now,
				ElapsedSeconds: 3725,
			},
			want: "[stopwatch]: 1:02:05",
		},
		{
			name: "grace",
			status: screen.Status{
				Phase:        "grace",
				Mode:         "countdown",
				UpdatedAt:    now,
				GraceSeconds: 7,
			},
			want: "[countdown]: starting in 7s",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusLine(tc.status, now))
		})
	}
}

func TestAppCommands(t *testing.T) {
	a := Get()

	var names []string
	for _, c := range a.Commands {
		names = append(names, c.Name)
	}

	assert.ElementsMatch(t, []string{"edit-config", "list", "stats", "delete", "status"}, names)
}

func TestLedgerOpensOnFreshInstall(t *testing.T) {
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FOCUS_ENV", "")

	xdg.Reload()

	require.NoError(t, config.InitializePaths())

	db, err := store.NewClient(config.DBFilePath())
	require.NoError(t, err)

	_, err = db.SubmitSession(context.Background(), timer.FinalizedSession{
		ID:              "first",
		StartTime:       time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2024, time.March, 4, 9, 25, 0, 0, time.UTC),
		DurationSeconds: 1500,
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.False(t, store.Locked(config.DBFilePath()))
}
