package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophgarage/internal/client/client"
	"github.com/dmitrijs2005/gophgarage/internal/client/config"
	"github.com/dmitrijs2005/gophgarage/internal/client/connectivity"
	"github.com/dmitrijs2005/gophgarage/internal/client/notify"
	"github.com/dmitrijs2005/gophgarage/internal/client/reconcile"
	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/client/services"
	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/filex"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// imageStore hands out presigned URLs for vehicle photos.
type imageStore interface {
	VehicleImageUploadURL(ctx context.Context, vehicleID models.ID) (*models.ImageUpload, error)
	VehicleImageURL(ctx context.Context, vehicleID models.ID) (string, error)
}

type App struct {
	config *config.Config
	logger logging.Logger

	sess      *session.Context
	auth      services.AuthService
	garage    *reconcile.Reconciler
	images    imageStore
	watcher   *connectivity.Watcher
	scheduler *notify.Scheduler
	devices   *notify.DeviceRegistration

	reader *bufio.Reader
	out    io.Writer

	closers []func() error
}

// NewApp opens the local cache and wires the client components together.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	for _, p := range []string{c.LogFile, c.CacheDSN} {
		if err := filex.EnsureParentDir(p); err != nil {
			return nil, err
		}
	}
	logger, logCloser := logging.NewRotatingFile(c.LogFile, c.LogLevel)

	db, err := cache.Open(ctx, c.CacheDSN)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	sess := session.New()
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, sess)
	store := cache.NewSQLiteRepository(db)
	garage := reconcile.New(api, store, sess, logger)

	a := newApp(c, logger, sess, services.NewAuthService(api, store, sess, logger), garage, api, os.Stdin, os.Stdout)
	a.watcher = connectivity.NewWatcher(api, garage, c.OnlineCheckInterval, logger)
	a.devices = notify.NewDeviceRegistration(api, c.DeviceToken, logger)
	sess.OnChange(a.devices.OnSessionChange)

	a.closers = append(a.closers, db.Close, logCloser.Close)
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, sess *session.Context, auth services.AuthService,
	garage *reconcile.Reconciler, images imageStore, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		sess:   sess,
		auth:   auth,
		garage: garage,
		images: images,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.scheduler = notify.NewScheduler(printDeliverer{w: out, logger: logger}, c.NotifyWindow, c.NotifyInterval, logger)
	sess.OnChange(func(context.Context, *session.Session, *session.Session) { a.scheduler.Reset() })
	return a
}

// Run restores the last session, starts the background workers and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.Close()
	defer cancel()

	a.printf("Welcome to GophGarage CLI (type 'help' for commands)\n")

	if ok, err := a.auth.Restore(ctx); err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	} else if ok {
		a.printf("Welcome back, %s\n", a.userName())
	}

	var wg sync.WaitGroup
	reminders, unsubscribe := a.garage.SubscribeReminders()
	defer unsubscribe()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.scheduler.Run(ctx, reminders)
	}()
	if a.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.watcher.Run(ctx)
		}()
	}

	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	wg.Wait()
}

// Close releases the reconciler, the cache and the log file.
func (a *App) Close() {
	a.garage.Close()
	if a.devices != nil {
		a.devices.Wait()
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			fmt.Fprintf(os.Stderr, "close: %v\n", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sess.Current()
	return ok
}

func (a *App) userName() string {
	s, _ := a.sess.Current()
	return s.Username
}

func (a *App) mode() Mode {
	if a.garage.Online() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) getStatus() string {
	s := ""
	if name := a.userName(); name != "" {
		s = name + " "
	}
	return fmt.Sprintf("(%s%s)", s, a.mode())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// printDeliverer shows reminder notifications in the terminal.
type printDeliverer struct {
	w      io.Writer
	logger logging.Logger
}

func (d printDeliverer) Deliver(ctx context.Context, m notify.Message) error {
	if _, err := fmt.Fprintf(d.w, "\n[%s] %s\n", m.Title, m.Body); err != nil {
		return err
	}
	return notify.LogDeliverer{Logger: d.logger}.Deliver(ctx, m)
}
