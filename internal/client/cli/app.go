package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/flows"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	store       *session.Store
	authService services.AuthService

	router    *flows.Router
	gate      *flows.Gate
	login     *flows.Login
	dashboard *flows.Dashboard

	mu           sync.Mutex
	registration *flows.Registration

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database, restores a saved session and wires the
// HTTP auth client into the flows.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	store := session.NewStore(session.NewSQLitePersister(db))
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, store, log)
	a := newApp(c, log, store, as, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

// newApp builds the UI around an existing store and auth service.
func newApp(c *config.Config, log logging.Logger, store *session.Store, as services.AuthService, in io.Reader, out io.Writer) *App {
	a := &App{
		config:      c,
		log:         log,
		store:       store,
		authService: as,
		reader:      bufio.NewReader(in),
		out:         &syncWriter{w: out},
	}

	start := flows.RouteLogin
	if store.IsAuthenticated() {
		start = flows.RouteDashboard
	}

	notify := flows.NotifierFunc(func(msg string) { a.println(msg) })
	a.router = flows.NewRouter(start, a.onNavigate)
	a.gate = flows.NewGate(store, as, a.router, log)
	a.login = flows.NewLogin(as, a.router, notify, log)
	a.dashboard = flows.NewDashboard(store)
	return a
}

// Run shows the welcome line, starts the session watcher and blocks in the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	a.println("Welcome to the notes client (type 'help' for commands)")
	if a.router.Current() == flows.RouteDashboard {
		a.println(a.dashboard.Welcome())
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.gate.Watch(ctx, a.onSessionChange)
	}()

	runREPL(ctx, a, a.getStatus, a.reader, a.out)

	cancel()
	wg.Wait()
}

// Close cancels a pending registration redirect and closes the database.
func (a *App) Close() {
	a.mu.Lock()
	if a.registration != nil {
		a.registration.Close()
		a.registration = nil
	}
	a.mu.Unlock()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close database", "error", err)
		}
		a.db = nil
	}
}

// isLoggedIn reads the store directly; the gate only catches up while Run
// is watching.
func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

// getStatus renders the prompt status: route, session affordance and the
// username when logged in.
func (a *App) getStatus() string {
	s := fmt.Sprintf("%s [%s]", a.router.Current(), a.gate.Affordance())
	if rec, ok := a.store.Get(); ok && rec.Username != "" {
		s += " " + rec.Username
	}
	return "(" + s + ")"
}

func (a *App) onNavigate(from, to string) {
	a.log.Debug(context.Background(), "navigate", "from", from, "to", to)
	switch to {
	case flows.RouteDashboard:
		a.println(a.dashboard.Welcome())
	case flows.RouteLogin:
		if from == flows.RouteRegister {
			a.println("Please log in with your new account.")
		}
		a.login.Reset()
	}
}

// onSessionChange keeps the user off the dashboard once the session is gone.
func (a *App) onSessionChange(authenticated bool) {
	if !authenticated && a.router.Current() == flows.RouteDashboard {
		a.router.Navigate(flows.RouteLogin)
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// syncWriter serializes writes from the REPL and from timer callbacks.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
