package callwindow

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/callwindow/config"
	"github.com/opd-ai/callwindow/interfaces"
	"github.com/opd-ai/callwindow/service"
	"github.com/opd-ai/callwindow/window"
)

// Options configures an Application.
type Options struct {
	// Config defaults to config.Default().
	Config *config.Config

	// NoUI hides the window. It is also the headless default when the
	// configuration does not set one.
	NoUI bool
	// AutoConnect and AutoCall are or-ed with the configuration.
	AutoConnect bool
	AutoCall    bool

	// Backend defaults to a window.HeadlessBackend.
	Backend window.Backend
	// Host defaults to service.NewSystemHost; without one the installation
	// is left alone.
	Host service.Host
	// Observer defaults to a LoopbackObserver.
	Observer interfaces.MainWindowObserver

	ServiceOptions []service.Option
	Logger         *logrus.Entry
}

// Application owns the main window and the service lifecycle.
type Application struct {
	cfg      *config.Config
	flags    service.Flags
	window   *window.MainWindow
	manager  *service.Manager
	loopback *LoopbackObserver
	logger   *logrus.Entry
}

// New builds an application. Nothing is created or installed until Run.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.WithField("component", "application")
	}

	backend := opts.Backend
	if backend == nil {
		backend = window.NewHeadlessBackend()
	}

	a := &Application{
		cfg: cfg,
		flags: service.Flags{
			NoUI:         opts.NoUI,
			Headless:     cfg.Server.HeadlessOr(opts.NoUI),
			RunAsService: cfg.Server.SystemService,
		},
		logger: logger,
	}

	a.window = window.NewMainWindow(backend, window.Options{
		Server:      cfg.Client.Server,
		Port:        cfg.Client.Port,
		AutoConnect: opts.AutoConnect || cfg.Server.AutoConnect,
		AutoCall:    opts.AutoCall || cfg.Client.AutoCall,
		NoUI:        opts.NoUI,
		Width:       cfg.Client.Width,
		Height:      cfg.Client.Height,
		Logger:      logger.WithField("component", "main_window"),
	})

	observer := opts.Observer
	if observer == nil {
		a.loopback = NewLoopbackObserver(a.window, nil)
		observer = a.loopback
	}
	a.window.RegisterObserver(observer)

	host := opts.Host
	if host == nil {
		h, err := service.NewSystemHost()
		if err != nil && !errors.Is(err, service.ErrUnsupported) {
			return nil, err
		}
		host = h
	}
	if host != nil {
		record := service.Record{
			Name:        cfg.Service.Name,
			DisplayName: cfg.Service.DisplayName,
			Account:     cfg.Service.Account,
			Password:    cfg.Service.Password,
		}
		serviceOpts := append([]service.Option{
			service.WithLogger(logger.WithField("component", "service_manager")),
		}, opts.ServiceOptions...)
		a.manager = service.NewManager(host, record, serviceOpts...)
	}

	return a, nil
}

// Window returns the main window.
func (a *Application) Window() *window.MainWindow {
	return a.window
}

// Loopback returns the built-in observer, nil when Options.Observer was set.
func (a *Application) Loopback() *LoopbackObserver {
	return a.loopback
}

// Flags returns the resolved startup switches.
func (a *Application) Flags() service.Flags {
	return a.flags
}

// Run reconciles the service installation and then runs the window, either
// directly or under the service dispatcher. A failed reconcile or a
// dispatcher that cannot start is logged and the window runs directly. It
// returns nil when the window is closed or ctx is canceled.
func (a *Application) Run(ctx context.Context) error {
	decision, err := a.Reconcile(ctx)
	if err != nil {
		a.logger.WithError(err).WithField("function", "Run").Warn("Service reconcile failed, continuing without service changes")
		decision = service.Decision{}
	}
	if decision.RunAsService {
		err := a.manager.Run(a.RunWindow)
		if err == nil {
			return nil
		}
		a.logger.WithError(err).WithField("function", "Run").Warn("Service dispatcher did not start, running interactively")
		if ctx.Err() != nil {
			return nil
		}
	}
	return a.RunWindow(ctx)
}

// Reconcile applies the startup service decision. Without a service
// control manager it decides to run interactively.
func (a *Application) Reconcile(ctx context.Context) (service.Decision, error) {
	if a.manager == nil {
		a.logger.WithField("function", "Reconcile").Debug("No service control manager, running interactively")
		return service.Decision{}, nil
	}
	return a.manager.Reconcile(ctx, a.flags)
}

// RunWindow creates the window and runs its message loop on the calling
// goroutine until the window is destroyed or ctx is canceled.
func (a *Application) RunWindow(ctx context.Context) error {
	if err := a.window.Create(); err != nil {
		return err
	}
	defer a.shutdown()

	a.logger.WithFields(logrus.Fields{
		"function": "RunWindow",
		"no_ui":    a.flags.NoUI,
		"headless": a.flags.Headless,
	}).Info("Entering message loop")

	err := a.window.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Application) shutdown() {
	if a.loopback != nil {
		a.loopback.hangUp()
	}
	if a.window.IsWindow() {
		if err := a.window.Destroy(); err != nil {
			a.logger.WithError(err).Warn("Failed to destroy main window")
		}
	}
}
