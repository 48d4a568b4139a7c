package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	sessioninadapter "laprun/internal/modules/session/adapter/in"
	sessionoutadapter "laprun/internal/modules/session/adapter/out"
	sessionout "laprun/internal/modules/session/port/out"
	sessionservice "laprun/internal/modules/session/service"
	sessionusecase "laprun/internal/modules/session/usecase"
	taskinadapter "laprun/internal/modules/task/adapter/in"
	taskoutadapter "laprun/internal/modules/task/adapter/out"
	taskservice "laprun/internal/modules/task/service"
	taskusecase "laprun/internal/modules/task/usecase"
	"laprun/internal/platform/clock"
	"laprun/internal/platform/config"
	"laprun/internal/platform/id"
	"laprun/internal/platform/logx"
	uiapp "laprun/internal/ui/app"
)

type App struct {
	Config     config.Config
	Log        logx.Logger
	TaskCLI    taskinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler

	closers []io.Closer
}

// New wires both modules against the sqlite file and journal directory named
// in cfg. The caller must Close the App.
func New(cfg config.Config) (*App, error) {
	return build(cfg, sessionoutadapter.NewWallScheduler())
}

func build(cfg config.Config, scheduler sessionout.Scheduler) (*App, error) {
	log, logCloser, err := logx.New(logx.Config{
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
		File:    cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Config: cfg, Log: log, closers: []io.Closer{logCloser}}

	kv, err := taskoutadapter.NewSQLiteKVStore(cfg.DBPath)
	if err != nil {
		app.closeAll()
		return nil, fmt.Errorf("new task store: %w", err)
	}
	app.closers = append(app.closers, kv)

	history, err := sessionoutadapter.NewSQLiteHistoryStore(cfg.DBPath)
	if err != nil {
		app.closeAll()
		return nil, fmt.Errorf("new history store: %w", err)
	}
	app.closers = append(app.closers, history)

	guard := taskoutadapter.NewSessionGuard()
	taskUC := taskusecase.NewInteractor(
		taskservice.NewCatalogService(kv, log.With(logx.String("module", "task"))),
		guard,
	)

	var journal sessionout.Journal
	if cfg.Journal {
		journal = sessionoutadapter.NewNoteJournal(cfg.JournalDir)
	}
	sessionLog := log.With(logx.String("module", "session"))
	runner := sessionservice.NewRunner(
		clock.SystemClock{},
		id.UUID{},
		sessionoutadapter.NewTaskSourceAdapter(taskUC),
		scheduler,
		sessionLog,
	)
	sessionUC := sessionusecase.NewInteractor(runner, history, journal, sessionLog)
	app.closers = append(app.closers, runner)
	guard.Bind(sessionUC.Active)

	app.TaskCLI = taskinadapter.NewCLIHandler(taskUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	return app, nil
}

// Close ends a session still in progress as a user stop, so it is recorded,
// then releases the stores and the log file.
func (a *App) Close() error {
	if a.SessionCLI.Active(context.Background()) {
		if _, err := a.SessionCLI.Stop(context.Background()); err != nil {
			a.Log.Error("stop session on exit", logx.Err(err))
		}
	}
	return a.closeAll()
}

func (a *App) closeAll() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.DefaultLaps, app.TaskCLI, app.SessionCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	unsubscribe := app.SessionCLI.Subscribe(uiapp.NewObserver(program.Send))
	defer unsubscribe()
	_, err := program.Run()
	return err
}
