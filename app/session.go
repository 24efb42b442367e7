package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/focusring/dial"
	"github.com/ayoisaiah/focusring/internal/clock"
	"github.com/ayoisaiah/focusring/internal/config"
	"github.com/ayoisaiah/focusring/internal/remote"
	"github.com/ayoisaiah/focusring/notify"
	"github.com/ayoisaiah/focusring/screen"
	"github.com/ayoisaiah/focusring/timer"
)

// mirror records every session in the local ledger and uploads it to a
// remote endpoint. The reward reported is the remote one.
type mirror struct {
	remote timer.Submitter
	ledger timer.Submitter
	log    *slog.Logger
}

func (m *mirror) SubmitSession(
	ctx context.Context,
	sess timer.FinalizedSession,
) (timer.Reward, error) {
	_, err := m.ledger.SubmitSession(ctx, sess)
	if err != nil {
		m.log.Warn(
			"unable to record session locally",
			slog.String("session", sess.ID),
			slog.Any("error", err),
		)
	}

	return m.remote.SubmitSession(ctx, sess)
}

// newSubmitter returns the ledger, or a mirror of it and the remote endpoint
// when an upload URL is configured.
func newSubmitter(ledger timer.Submitter, log *slog.Logger) (timer.Submitter, error) {
	cfg, err := remote.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if !cfg.Enabled() {
		return ledger, nil
	}

	rc, err := remote.New(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("uploading sessions", slog.String("url", cfg.URL))

	return &mirror{
		remote: rc,
		ledger: ledger,
		log:    log,
	}, nil
}

// runSessionCmd executes the configured command after a recorded session.
func runSessionCmd(ctx context.Context, sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)

	return cmd.Run()
}

func policy(cfg *config.Config) (timer.Policy, error) {
	mode, err := timer.ParseMode(cfg.Timer.DefaultMode)
	if err != nil {
		return timer.Policy{}, err
	}

	return timer.Policy{
		Grace:           cfg.Timer.Grace,
		MaxSession:      cfg.Timer.MaxSession,
		DefaultDuration: cfg.Timer.DefaultDuration,
		DefaultMode:     mode,
	}, nil
}

func newNotifier(
	cfg *config.Config,
	c clock.Clock,
	log *slog.Logger,
) (timer.Notifier, error) {
	if !cfg.Notifications.Enabled {
		return notify.Nop{}, nil
	}

	return notify.NewDesktop(
		c,
		notify.WithSound(cfg.Notifications.Sound),
		notify.WithLogger(log),
	)
}

// session holds everything a running focusring screen needs.
type session struct {
	program *tea.Program
	model   *screen.Model
	uploads sync.WaitGroup
}

// newSession wires the clock, engine, dial and screen together. Clock
// callbacks and upload results are delivered to the program so that all
// state changes happen on its event loop.
func newSession(
	ctx context.Context,
	cfg *config.Config,
	submitter timer.Submitter,
	log *slog.Logger,
	opts ...tea.ProgramOption,
) (*session, error) {
	s := &session{}

	clk := clock.NewReal(func(fn func()) {
		s.program.Send(screen.Callback(fn))
	})

	p, err := policy(cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := newNotifier(cfg, clk, log)
	if err != nil {
		return nil, err
	}

	finalizer := timer.NewFinalizer(
		submitter,
		timer.WithRunner(func(fn func()) {
			s.uploads.Add(1)

			go func() {
				defer s.uploads.Done()

				fn()
			}()
		}),
		timer.WithResultHandler(func(r timer.Result) {
			if r.Err == nil {
				err := runSessionCmd(ctx, cfg.Session.Cmd)
				if err != nil {
					log.Warn("session command failed", slog.Any("error", err))
				}
			}

			s.program.Send(screen.Result(r))
		}),
		timer.WithFinalizerLogger(log),
		timer.WithLocation(cfg.Location()),
	)

	engine := timer.New(
		clk,
		finalizer,
		p,
		timer.WithNotifier(notifier),
		timer.WithLogger(log),
	)

	d, err := dial.New(
		dial.Config{
			MaxDuration:  cfg.Dial.MaxDuration,
			SnapInterval: cfg.Dial.SnapInterval,
		},
		dial.WithGate(func() bool {
			return engine.Phase() == timer.Idle
		}),
	)
	if err != nil {
		return nil, err
	}

	s.model = screen.New(screen.Options{
		Clock:          clk,
		Engine:         engine,
		Reconciler:     timer.NewReconciler(engine),
		Dial:           d,
		Logger:         log,
		StatusPath:     config.StatusFilePath(),
		Tag:            cfg.Session.Tag,
		DarkTheme:      cfg.Display.DarkTheme,
		TwentyFourHour: cfg.Display.TwentyFourHour,
		Debug:          cfg.CLI.Debug,
	})

	s.program = tea.NewProgram(s.model, opts...)

	return s, nil
}

// run blocks until the screen exits and every upload has finished.
func (s *session) run() error {
	_, err := s.program.Run()

	s.uploads.Wait()

	return err
}
