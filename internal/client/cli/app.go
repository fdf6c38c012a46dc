package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/imagenstudio/internal/client/client"
	"github.com/dmitrijs2005/imagenstudio/internal/client/config"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/history"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/session"
	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/users"
	"github.com/dmitrijs2005/imagenstudio/internal/client/router"
	"github.com/dmitrijs2005/imagenstudio/internal/client/services"
	"github.com/dmitrijs2005/imagenstudio/internal/client/storage"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
	"github.com/dmitrijs2005/imagenstudio/internal/tokenx"

	_ "modernc.org/sqlite"
)

// wiper clears all persisted client state.
type wiper interface {
	Wipe(ctx context.Context) bool
}

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *client.Database
	store       wiper
	authService services.AuthService
	generator   services.GeneratorService
	router      *router.Router
	state       *appState
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the local database and wires the repositories and services.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	issuer, err := tokenx.New(c.TokenSource)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := storage.New(db.KV, db, log)

	as := services.NewAuthService(
		users.NewDirectory(store),
		session.NewFlag(store),
		issuer,
		log,
		services.WithResetTTL(c.ResetTokenTTL),
		services.WithOrigin(c.AppOrigin),
	)
	images := client.NewImagenClient(c.APIBaseURL, c.Model, c.APIKey, nil, log)
	gs := services.NewGeneratorService(images, history.NewLog(store), log)

	a := newApp(as, gs, store, bufio.NewReader(os.Stdin), os.Stdout, log)
	a.config = c
	a.db = db
	return a, nil
}

func newApp(as services.AuthService, gs services.GeneratorService, store wiper, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		log:         log,
		store:       store,
		authService: as,
		generator:   gs,
		router:      router.New(),
		state:       newAppState(),
		reader:      reader,
		out:         out,
	}
}

// Run shows the screen for location and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context, location string) {
	if location == "" {
		location = "/"
	}
	a.println("Welcome to Imagen AI Studio (type 'help' for commands)")
	a.navigate(ctx, location)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
