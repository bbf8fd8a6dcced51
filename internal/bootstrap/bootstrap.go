package bootstrap

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	calendarinadapter "worklog/internal/modules/calendar/adapter/in"
	calendaroutadapter "worklog/internal/modules/calendar/adapter/out"
	calendarservice "worklog/internal/modules/calendar/service"
	calendarusecase "worklog/internal/modules/calendar/usecase"
	intervalinadapter "worklog/internal/modules/interval/adapter/in"
	intervaloutadapter "worklog/internal/modules/interval/adapter/out"
	intervalservice "worklog/internal/modules/interval/service"
	intervalusecase "worklog/internal/modules/interval/usecase"
	journalinadapter "worklog/internal/modules/journal/adapter/in"
	journaloutadapter "worklog/internal/modules/journal/adapter/out"
	journalservice "worklog/internal/modules/journal/service"
	journalusecase "worklog/internal/modules/journal/usecase"
	notifyinadapter "worklog/internal/modules/notify/adapter/in"
	notifyoutadapter "worklog/internal/modules/notify/adapter/out"
	notifyservice "worklog/internal/modules/notify/service"
	notifyusecase "worklog/internal/modules/notify/usecase"
	reminderinadapter "worklog/internal/modules/reminder/adapter/in"
	reminderoutadapter "worklog/internal/modules/reminder/adapter/out"
	reminderservice "worklog/internal/modules/reminder/service"
	reminderusecase "worklog/internal/modules/reminder/usecase"
	reportinadapter "worklog/internal/modules/report/adapter/in"
	reportusecase "worklog/internal/modules/report/usecase"
	sessioninadapter "worklog/internal/modules/session/adapter/in"
	sessionoutadapter "worklog/internal/modules/session/adapter/out"
	sessionservice "worklog/internal/modules/session/service"
	sessionusecase "worklog/internal/modules/session/usecase"
	timelineinadapter "worklog/internal/modules/timeline/adapter/in"
	timelineoutadapter "worklog/internal/modules/timeline/adapter/out"
	timelinedto "worklog/internal/modules/timeline/dto"
	timelineusecase "worklog/internal/modules/timeline/usecase"
	"worklog/internal/platform/clock"
	"worklog/internal/platform/config"
	"worklog/internal/platform/id"
	uiapp "worklog/internal/ui/app"
)

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	IntervalCLI intervalinadapter.CLIHandler
	JournalCLI  journalinadapter.CLIHandler
	CalendarCLI calendarinadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler
	TimelineCLI timelineinadapter.CLIHandler

	Daemon      *reminderinadapter.Daemon
	DaemonStore *reminderoutadapter.FileDaemonStore
	Logger      hclog.Logger

	db *sql.DB
}

func New(cfg config.Config) (*App, error) {
	logger := hclog.New(&hclog.LoggerOptions{Name: "worklog", Level: hclog.Info})

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	intervalStore, err := intervaloutadapter.NewSQLiteIntervalStore(db)
	if err != nil {
		return nil, fmt.Errorf("new interval store: %w", err)
	}
	intervalUC := intervalusecase.NewInteractor(
		intervalservice.NewIntervalService(ids, intervalStore, cfg.Location),
		cfg.Location,
	)

	noteStore, err := journaloutadapter.NewSQLiteNoteStore(db)
	if err != nil {
		return nil, fmt.Errorf("new note store: %w", err)
	}
	captureStore, err := journaloutadapter.NewSQLiteCaptureStore(db)
	if err != nil {
		return nil, fmt.Errorf("new capture store: %w", err)
	}
	journalUC := journalusecase.NewInteractor(
		journalservice.NewJournalService(clk, noteStore, captureStore, cfg.NoteWindowTTL, cfg.Location),
	)

	reportUC := reportusecase.NewInteractor(clk, intervalUC, journalUC, cfg.Location)

	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionStore),
		intervalUC,
		journalUC,
		reportUC,
	)

	eventStore, err := calendaroutadapter.NewSQLiteEventStore(db)
	if err != nil {
		return nil, fmt.Errorf("new event store: %w", err)
	}
	calendarUC := calendarusecase.NewInteractor(
		calendarservice.NewCalendarService(clk, ids, eventStore, cfg.Location),
	)

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.ManifestPath),
		notifyoutadapter.NewGRPCHost(),
	))

	timelineUC := timelineusecase.NewInteractor(
		reportUC,
		timelineoutadapter.NewPluginEncoder(notifyUC),
		cfg.Location,
	)

	notifier := reminderoutadapter.NewPluginNotifier(notifyUC, reminderoutadapter.NewLogNotifier(logger))
	reminderUC := reminderusecase.NewInteractor(
		clk,
		reminderservice.NewTimerSet(clk, clk),
		sessionUC,
		calendarUC,
		journalUC,
		notifier,
		logger,
		cfg.BreakAlertAfter,
		cfg.AnnounceChannel,
	)
	daemon, err := reminderinadapter.NewDaemon(
		reminderUC, sessionUC, clk, logger, cfg.Location, cfg.PollInterval, cfg.EventScanAt,
	)
	if err != nil {
		return nil, fmt.Errorf("new daemon: %w", err)
	}

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		IntervalCLI: intervalinadapter.NewCLIHandler(intervalUC),
		JournalCLI:  journalinadapter.NewCLIHandler(journalUC),
		CalendarCLI: calendarinadapter.NewCLIHandler(calendarUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		NotifyCLI:   notifyinadapter.NewCLIHandler(notifyUC),
		TimelineCLI: timelineinadapter.NewCLIHandler(timelineUC),
		Daemon:      daemon,
		DaemonStore: reminderoutadapter.NewFileDaemonStore(cfg.DataDir),
		Logger:      logger,
		db:          db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// RenderTimeline draws a week layout as colored terminal rows.
func RenderTimeline(layout timelinedto.WeekLayout, width int) string {
	return timelineoutadapter.NewTerminalRenderer(width).Render(layout)
}

func RunTUI(app *App, userID, channelID string) error {
	model := uiapp.NewModel(
		userID, channelID,
		app.SessionCLI, app.JournalCLI, app.IntervalCLI, app.CalendarCLI,
		app.ReportCLI, app.TimelineCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
