package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focusring/internal/config"
	"github.com/ayoisaiah/focusring/internal/logging"
	"github.com/ayoisaiah/focusring/internal/models"
	"github.com/ayoisaiah/focusring/internal/osutil"
	"github.com/ayoisaiah/focusring/internal/timeutil"
	"github.com/ayoisaiah/focusring/internal/ui"
	"github.com/ayoisaiah/focusring/screen"
	"github.com/ayoisaiah/focusring/store"
)

const (
	envNoColor      = "NO_COLOR"
	envFocusNoColor = "FOCUS_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig reads the config file, asking for the basics on first run, and
// applies the command-line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	return config.New(
		config.WithPromptConfig(config.ConfigFilePath()),
		config.WithViperConfig(config.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
}

func sessionHelper(ctx *cli.Context) ([]models.Session, *store.Client, error) {
	filter, err := config.Filter(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	sessions, err := db.GetSessions(filter.StartTime, filter.EndTime, filter.Tags)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return sessions, db, nil
}

// defaultAction runs the focusring screen.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger, closer := logging.New(logging.Options{
		Path:  config.LogFilePath(),
		Debug: cfg.CLI.Debug,
	})

	defer closer.Close()

	slog.SetDefault(logger)

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	submitter, err := newSubmitter(db, logger)
	if err != nil {
		return err
	}

	s, err := newSession(
		ctx.Context,
		cfg,
		submitter,
		logger,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if err != nil {
		return err
	}

	return s.run()
}

// editConfigAction handles the edit-config command which opens the focusring
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// listAction handles the list command and prints a table of all the sessions
// recorded within a time period.
func listAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("json") {
		b, err := json.Marshal(sessions)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listSessions(os.Stdout, sessions)
}

// statsAction summarises the sessions within a time period.
func statsAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	profile, err := db.Profile()
	if err != nil {
		return err
	}

	s := computeStats(sessions, profile)

	if ctx.Bool("json") {
		b, err := json.Marshal(s)
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	printStats(os.Stdout, s)

	return nil
}

// deleteAction handles the delete command which deletes one or more
// sessions.
func deleteAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	return delSessions(db, sessions, os.Stdin, os.Stdout)
}

// statusAction handles the status command and prints the status of the
// running session.
func statusAction(_ *cli.Context) error {
	// nothing can be running if the ledger is not held by another process
	if !store.Locked(config.DBFilePath()) {
		return nil
	}

	s, ok, err := screen.ReadStatus(config.StatusFilePath())
	if err != nil || !ok {
		return err
	}

	pterm.Println(statusLine(s, time.Now()))

	return nil
}

func statusLine(s screen.Status, now time.Time) string {
	label := "[" + s.Mode + "]"
	if s.Tag != "" {
		label = "[" + s.Mode + ": " + s.Tag + "]"
	}

	if s.Phase == "grace" {
		return fmt.Sprintf("%s: starting in %ds", label, s.GraceSeconds)
	}

	return fmt.Sprintf("%s: %s", label, timeutil.Clock(s.Seconds(now)))
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	err := config.InitializePaths()
	if err != nil {
		return err
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	ui.DarkTheme = true

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if FOCUS_NO_COLOR is set
	if _, exists := os.LookupEnv(envFocusNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting focusring")

	return nil
}
