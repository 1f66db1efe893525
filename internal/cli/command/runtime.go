package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/yndnr/examprep-go/internal/cli/config"
	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/cli/guard"
	"github.com/yndnr/examprep-go/internal/cli/notify"
	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/core/service"
	"github.com/yndnr/examprep-go/internal/infra/buildinfo"
	"github.com/yndnr/examprep-go/internal/infra/shutdown"
	"github.com/yndnr/examprep-go/internal/infra/tlsroots"
	"github.com/yndnr/examprep-go/internal/telemetry/logger"
	"github.com/yndnr/examprep-go/internal/telemetry/metric"
	"github.com/yndnr/examprep-go/internal/telemetry/tracer"
)

// LoginHint is printed when a command needs the user to sign in.
const LoginHint = "Run 'examprep-cli login' to sign in."

// RuntimeOptions configures NewRuntime.
type RuntimeOptions struct {
	ConfigPath string
	// Overrides are dotted config keys set by command-line flags.
	Overrides map[string]any
	Verbose   bool
	// Stderr receives notifications, prompts and logs.
	Stderr io.Writer
	// Store replaces the on-disk session store (tests, ephemeral use).
	Store session.Store
}

// Runtime holds everything a command needs. One Runtime serves a single
// command invocation, or every line of a REPL session.
type Runtime struct {
	ConfigPath string
	Logger     logger.Logger
	Store      session.Store
	Metrics    *metric.Registry
	Notifier   notify.Notifier
	Broker     *notify.Broker
	Shutdown   *shutdown.Handler
	Tracing    *tracer.Provider

	stderr    io.Writer
	overrides map[string]any
	verbose   bool

	recent *notificationLog

	mu      sync.RWMutex
	cfg     *config.Config
	client  *connection.Client
	spinner *output.Spinner
}

// NewRuntime loads configuration and opens the session store.
func NewRuntime(opts RuntimeOptions) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rt := &Runtime{
		ConfigPath: opts.ConfigPath,
		Metrics:    metric.NewRegistry(),
		Broker:     notify.NewBroker(16),
		Shutdown:   shutdown.NewHandler(5 * time.Second),
		stderr:     opts.Stderr,
		overrides:  opts.Overrides,
		verbose:    opts.Verbose,
		cfg:        cfg,
		recent:     &notificationLog{max: recentNotifications},
	}
	if rt.ConfigPath == "" {
		rt.ConfigPath = config.DefaultConfigPath()
	}
	if rt.stderr == nil {
		rt.stderr = os.Stderr
	}

	logCfg := cfg.Log
	logCfg.Output = rt.stderr
	logCfg.Level = rt.logLevel(cfg)
	rt.Logger, err = logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(rt.Logger)
	rt.Shutdown.OnShutdown("log file", func(context.Context) error { return logger.Close(rt.Logger) })

	rt.Tracing, err = tracer.New(cfg.Trace, buildinfo.Product, buildinfo.Version)
	if err != nil {
		return nil, err
	}
	rt.Shutdown.OnShutdown("tracer", rt.Tracing.Shutdown)

	rt.Store = opts.Store
	if rt.Store == nil {
		store, err := session.OpenBadgerStore(session.DefaultBadgerConfig(cfg.Session.Dir), logger.Slog(rt.Logger))
		if err != nil {
			rt.Shutdown.Shutdown()
			return nil, fmt.Errorf("open session store: %w", err)
		}
		rt.Store = store
		rt.Shutdown.OnShutdown("session store", func(_ context.Context) error { return store.Close() })
	}
	rt.Shutdown.OnShutdown("notification broker", func(_ context.Context) error {
		rt.Broker.Close()
		return nil
	})

	notes, _ := rt.Broker.Subscribe()
	go rt.recent.consume(notes)

	rt.Notifier = notify.Multi(
		notify.Func(rt.renderNotification),
		notify.NewLog(rt.Logger),
		notify.Func(func(n notify.Notification) {
			rt.Metrics.Notifications.WithLabelValues(string(n.Variant)).Inc()
		}),
		rt.Broker,
	)

	if err := rt.rebuildClient(cfg); err != nil {
		rt.Shutdown.Shutdown()
		return nil, err
	}
	return rt, nil
}

// Config returns the active configuration.
func (rt *Runtime) Config() *config.Config {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.cfg
}

// Client returns the API client for the active configuration.
func (rt *Runtime) Client() *connection.Client {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.client
}

// Reload re-reads the configuration file and rebuilds the client.
// The session store is kept.
func (rt *Runtime) Reload() error {
	cfg, err := config.Load(rt.ConfigPath, rt.overrides)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := rt.rebuildClient(cfg); err != nil {
		return err
	}
	logger.SetLevel(rt.logLevel(cfg))
	rt.Logger.Info("configuration reloaded", "api_url", cfg.API.URL)
	return nil
}

// logLevel is the configured level unless --verbose forced debug.
func (rt *Runtime) logLevel(cfg *config.Config) string {
	if rt.verbose {
		return "debug"
	}
	return cfg.Log.Level
}

func (rt *Runtime) rebuildClient(cfg *config.Config) error {
	tlsCfg, err := tlsroots.ClientTLSConfig(cfg.API.CAFile)
	if err != nil {
		return fmt.Errorf("load CA file: %w", err)
	}

	opts := []connection.Option{
		connection.WithNotifier(rt.Notifier),
		connection.WithLogger(rt.Logger),
		connection.WithMetrics(rt.Metrics),
		connection.WithTimeout(cfg.API.Timeout.Std()),
	}
	if rt.Tracing.Enabled() {
		opts = append(opts, connection.WithTracer(rt.Tracing.Tracer()))
	}
	if tlsCfg != nil {
		opts = append(opts, connection.WithTLSConfig(tlsCfg))
	}
	client := connection.NewClient(cfg.API.URL, rt.Store, opts...)

	rt.mu.Lock()
	rt.cfg = cfg
	rt.client = client
	rt.mu.Unlock()
	return nil
}

// Auth returns the login/registration service.
func (rt *Runtime) Auth() *service.AuthService {
	return service.NewAuthService(rt.Client(), rt.Store, rt.Notifier)
}

// Exams returns the exam catalogue service.
func (rt *Runtime) Exams() *service.ExamService {
	return service.NewExamService(rt.Client())
}

// Statistics returns the statistics service.
func (rt *Runtime) Statistics() *service.StatisticsService {
	return service.NewStatisticsService(rt.Client())
}

// Guard protects commands that need a session. Its redirect prints the
// login hint.
func (rt *Runtime) Guard() *guard.Guard {
	return guard.New(rt.Client(), rt.Notifier, func(route string) {
		rt.Logger.Debug("redirect", "route", route)
		fmt.Fprintln(rt.stderr, LoginHint)
	})
}

// RecentNotifications returns the notifications shown so far, oldest
// first. Delivery is asynchronous.
func (rt *Runtime) RecentNotifications() []NotificationEntry {
	return rt.recent.list()
}

// Close runs the shutdown hooks and exports metrics when configured.
func (rt *Runtime) Close() error {
	if path := rt.Config().Metrics.Textfile; path != "" {
		if err := rt.Metrics.WriteTextfile(path); err != nil {
			rt.Logger.Warn("export metrics failed", "path", path, "error", err)
		}
	}
	return rt.Shutdown.Shutdown()
}

// renderNotification prints a notification on stderr, clearing any
// spinner first so the two do not share a line.
func (rt *Runtime) renderNotification(n notify.Notification) {
	rt.stopSpinner()
	notify.NewWriter(rt.stderr).Notify(n)
}

// spin runs fn with a spinner on stderr when stderr is a terminal.
func (rt *Runtime) spin(message string, fn func() error) error {
	s := output.NewSpinner(rt.stderr, message)
	if !isTerminal(rt.stderr) {
		s.Disable()
	}

	rt.mu.Lock()
	rt.spinner = s
	rt.mu.Unlock()

	s.Start()
	err := fn()
	rt.stopSpinner()
	return err
}

func (rt *Runtime) stopSpinner() {
	rt.mu.Lock()
	s := rt.spinner
	rt.spinner = nil
	rt.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
