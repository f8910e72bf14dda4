package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/anandk87/filetrack/internal/client/actions"
	"github.com/anandk87/filetrack/internal/client/api"
	"github.com/anandk87/filetrack/internal/client/config"
	"github.com/anandk87/filetrack/internal/client/guard"
	"github.com/anandk87/filetrack/internal/client/repositories/credentials"
	"github.com/anandk87/filetrack/internal/client/session"
	"github.com/anandk87/filetrack/internal/logging"

	_ "modernc.org/sqlite"
)

// Routes mirror the dashboard's navigation targets; the guard records them
// when an unauthenticated visitor is turned away.
const (
	routeLogin     = "/login"
	routeDashboard = "/dashboard"
	routeFiles     = "/dashboard/files"
	routeAlerts    = "/dashboard/alerts"
	routeUpload    = "/dashboard/upload"
	routeReports   = "/dashboard/reports"
)

type App struct {
	config  *config.Config
	client  api.Client
	session *session.Manager
	actions *actions.Controller
	guard   *guard.Guard
	log     logging.Logger
	reader  *bufio.Reader
	db      *sql.DB
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	client, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	db, err := credentials.Open(ctx, c.CredentialsDSN)
	if err != nil {
		return nil, err
	}
	store := credentials.NewSQLiteRepository(db)

	sess := session.New(ctx, store, client, c.SessionTimeout, log)
	sess.OnExpired(func() {
		printlnFn("\nSession expired due to inactivity.")
	})

	return &App{
		config:  c,
		client:  client,
		session: sess,
		actions: actions.NewController(client, sess, log),
		guard:   guard.New(sess, routeLogin),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		db:      db,
	}, nil
}

func (a *App) Close() {
	_ = a.client.Close()
	_ = a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to FileTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, a.session.Activity, scanner)

	a.session.Logout(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) getStatus() string {
	sess, ok := a.session.Current()
	if !ok {
		return ""
	}
	s := sess.User.Username + " " + string(sess.User.Role)
	if sess.User.Section != "" {
		s += "/" + sess.User.Section
	}
	return "(" + s + ")"
}

// admit runs a protected command's route through the guard and reports the
// outcome to the user when navigation is not granted.
func (a *App) admit(route string) bool {
	switch a.guard.Admit(route).Action {
	case guard.Grant:
		return true
	case guard.Defer:
		printlnFn("Session is still loading, try again.")
		return false
	default:
		printlnFn("Please log in first.")
		return false
	}
}
