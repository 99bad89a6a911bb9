package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/daastan/internal/client/api"
	"github.com/dmitrijs2005/daastan/internal/client/config"
	"github.com/dmitrijs2005/daastan/internal/client/repositories/slots"
	"github.com/dmitrijs2005/daastan/internal/client/services"
	"github.com/dmitrijs2005/daastan/internal/client/session"
	"github.com/dmitrijs2005/daastan/internal/logging"
)

var errLoginRequired = errors.New("please login first")

type App struct {
	config *config.Config
	shop   *services.Storefront
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	shutdownTracing func(context.Context) error
}

// NewApp opens the session database named by c.SessionDSN and wires the
// request pipeline against c.APIBaseURL.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	apiOpts := []api.Option{api.WithLogger(log.With("component", "api"))}
	var shutdownTracing func(context.Context) error
	if c.Trace {
		tracer, shutdown, err := newTracer()
		if err != nil {
			return nil, err
		}
		apiOpts = append(apiOpts, api.WithTracer(tracer))
		shutdownTracing = shutdown
	}

	db, err := slots.OpenSQLite(ctx, c.SessionDSN)
	if err != nil {
		if shutdownTracing != nil {
			_ = shutdownTracing(ctx)
		}
		return nil, fmt.Errorf("open session database: %w", err)
	}

	store := session.NewStore(slots.NewSQLiteRepository(db), c.StorageKeys,
		session.WithLogger(log.With("component", "session")))
	httpClient := api.NewClient(c.APIBaseURL, apiOpts...)
	coord := api.NewCoordinator(httpClient, store,
		api.WithCoordinatorLogger(log.With("component", "refresh")))
	shop := services.New(coord, store, services.WithLogger(log.With("component", "services")))

	return &App{
		config: c,
		shop:   shop,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    log,

		shutdownTracing: shutdownTracing,
	}, nil
}

// Run prints a greeting and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.log.Debug(ctx, "starting", "api", a.config.APIBaseURL, "session", a.config.SessionDSN)
	fmt.Fprintln(a.out, "Welcome to daastan (type 'help' for commands)")
	if u := a.shop.Session().CurrentUser(ctx); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Username)
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// Close flushes pending spans and closes the session database.
func (a *App) Close() error {
	var errs []error
	if a.shutdownTracing != nil {
		errs = append(errs, a.shutdownTracing(context.Background()))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// status renders the prompt suffix: " (name)" or " (name, admin)".
func (a *App) status(ctx context.Context) string {
	sess := a.shop.Session().Load(ctx)
	switch {
	case !sess.LoggedIn():
		return ""
	case sess.User == nil:
		return " (logged in)"
	case sess.User.Role.IsAdmin():
		return fmt.Sprintf(" (%s, admin)", sess.User.Username)
	default:
		return fmt.Sprintf(" (%s)", sess.User.Username)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.shop.Session().IsAuthenticated(ctx)
}

func (a *App) isAdmin(ctx context.Context) bool {
	return a.shop.Session().IsAdmin(ctx)
}

func (a *App) requireLogin(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		return errLoginRequired
	}
	return nil
}
