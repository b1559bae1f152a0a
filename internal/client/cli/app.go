package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/vistaran/helpdesk/internal/client/audit"
	"github.com/vistaran/helpdesk/internal/client/cache"
	"github.com/vistaran/helpdesk/internal/client/config"
	"github.com/vistaran/helpdesk/internal/client/directory"
	"github.com/vistaran/helpdesk/internal/client/notify"
	"github.com/vistaran/helpdesk/internal/client/remote"
	"github.com/vistaran/helpdesk/internal/client/session"
	"github.com/vistaran/helpdesk/internal/client/settings"
	"github.com/vistaran/helpdesk/internal/client/storage"
	"github.com/vistaran/helpdesk/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired client components. Construction follows the startup
// order the rest of the system depends on: durable store first, then
// settings and audit on top of it, then the session restored from it, and
// only for a restored session the cache.
type App struct {
	config   *config.Config
	session  *session.Manager
	cache    *cache.Cache
	settings *settings.Store
	audit    *audit.Recorder
	remote   remote.Store
	notify   *notify.Dispatcher
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.StoreDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	store := storage.NewStore(storage.NewSQLiteRepository(db), log)
	set := settings.New(ctx, store, log)
	rec := audit.NewRecorder(store, log)

	dir := directory.NewStatic(directory.SeedUsers())
	sess := session.NewManager(dir, store, rec, log)

	rem := remote.NewHTTPStore(c.ServerAddr, c.RequestTimeout, log)
	dataCache := cache.New(rem, c.PollInterval, log)

	sender := notify.NewEmailJSSender(set, c.RequestTimeout, log)
	dispatcher := notify.NewDispatcher(set, sender, log)

	return &App{
		config:   c,
		session:  sess,
		cache:    dataCache,
		settings: set,
		audit:    rec,
		remote:   rem,
		notify:   dispatcher,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session, activates the cache for a restored
// login, and hands control to the REPL. The cache is stopped on the way out.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	if a.isLoggedIn() {
		a.cache.Start(ctx)
	}
	defer a.cache.Stop()

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	user, _ := a.session.Current()
	return user != nil
}

// status renders the prompt suffix: effective user, plus the real user when
// impersonating.
func (a *App) status() string {
	user, realUser := a.session.Current()
	if user == nil {
		return ""
	}
	if realUser != nil && realUser.ID != user.ID {
		return "(" + user.Name + ", via " + realUser.Name + ")"
	}
	return "(" + user.Name + ")"
}
