// Package cli is the terminal presentation layer. It renders whatever
// the session store and moderation registry expose, and turns user
// gestures into calls on them; it holds no authority over session or
// list state itself.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/careerrise/careerctl/internal/admin"
	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/config"
	"github.com/careerrise/careerctl/internal/credstore"
	"github.com/careerrise/careerctl/internal/logging"
	"github.com/careerrise/careerctl/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	api      api.Client
	sess     *session.Store
	registry *admin.Registry
	reader   *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := credstore.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing credential database", "error", err)
		return nil, err
	}

	creds := credstore.NewSQLiteRepository(db)
	client := api.NewHTTPClient(cfg.ServerEndpointURL, cfg.RequestTimeout, log)
	sess := session.NewStore(client, creds, log)
	client.SetTokenSource(sess)

	a := &App{
		config: cfg,
		log:    log,
		api:    client,
		sess:   sess,
		reader: bufio.NewReader(os.Stdin),
	}
	a.registry = admin.NewRegistry(client, log, a.confirmAction)
	return a, nil
}

// confirmAction is the interactive confirmation step destructive
// moderation actions go through before any request is sent.
func (a *App) confirmAction(prompt string) bool {
	return GetConfirmation(a.reader, prompt, os.Stdout)
}

func (a *App) isLoggedIn() bool {
	return a.sess.IsLoggedIn()
}

// Run restores any persisted session and starts the command loop.
func (a *App) Run(ctx context.Context) {
	if err := a.sess.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}
	a.Root(ctx)
}
