package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how long Remove waits between stop polls.
const DefaultPollInterval = time.Second

// Manager installs, removes and runs one service.
type Manager struct {
	host         Host
	record       Record
	clock        TimeProvider
	pollInterval time.Duration
	executable   func() (string, error)
	logger       *logrus.Entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeProvider sets the clock used to wait between stop polls.
func WithTimeProvider(tp TimeProvider) Option {
	return func(m *Manager) {
		if tp != nil {
			m.clock = tp
		}
	}
}

// WithPollInterval sets the wait between stop polls.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// WithExecutable sets how Install resolves the program to register.
func WithExecutable(resolve func() (string, error)) Option {
	return func(m *Manager) {
		if resolve != nil {
			m.executable = resolve
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns a manager for record on host.
func NewManager(host Host, record Record, opts ...Option) *Manager {
	m := &Manager{
		host:         host,
		record:       record,
		clock:        RealTimeProvider{},
		pollInterval: DefaultPollInterval,
		executable:   os.Executable,
		logger:       logrus.WithField("component", "service_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record returns the managed service's record.
func (m *Manager) Record() Record {
	return m.record
}

// Installed reports whether the service exists.
func (m *Manager) Installed() (bool, error) {
	if m.record.Name == "" {
		return false, ErrInvalidRecord
	}

	db, err := m.host.Connect(AccessConnect)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer m.closeDatabase(db)

	svc, err := db.OpenService(m.record.Name, AccessQuery)
	if errors.Is(err, ErrNotInstalled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOpenService, err)
	}
	m.closeService(svc)
	return true, nil
}

// Install registers the running executable as an auto-start service.
func (m *Manager) Install() error {
	log := m.logger.WithFields(logrus.Fields{
		"function": "Install",
		"service":  m.record.Name,
	})
	if m.record.Name == "" {
		return ErrInvalidRecord
	}

	exe, err := m.executable()
	if err != nil {
		log.WithError(err).Error("Failed to resolve executable path")
		return fmt.Errorf("%w: %v", ErrExecutablePath, err)
	}

	db, err := m.host.Connect(AccessConnect | AccessCreateService)
	if err != nil {
		log.WithError(err).Error("Failed to open service control manager")
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer m.closeDatabase(db)

	svc, err := db.CreateService(m.record, exe)
	if err != nil {
		log.WithError(err).Error("Failed to create service")
		return fmt.Errorf("%w: %v", ErrCreateService, err)
	}
	m.closeService(svc)

	log.WithFields(logrus.Fields{
		"display_name": m.record.DisplayName,
		"account":      m.record.Account,
		"executable":   exe,
	}).Info("Service installed")
	return nil
}

// Remove stops the service, waits while it reports StopPending, and
// deletes it. A service that does not stop is still deleted; only failure to
// open or delete the service is returned. Canceling ctx ends the wait.
func (m *Manager) Remove(ctx context.Context) error {
	log := m.logger.WithFields(logrus.Fields{
		"function": "Remove",
		"service":  m.record.Name,
	})
	if m.record.Name == "" {
		return ErrInvalidRecord
	}

	db, err := m.host.Connect(AccessConnect)
	if err != nil {
		log.WithError(err).Error("Failed to open service control manager")
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer m.closeDatabase(db)

	svc, err := db.OpenService(m.record.Name, AccessStop|AccessQuery|AccessDelete)
	if err != nil {
		log.WithError(err).Error("Failed to open service")
		return fmt.Errorf("%w: %v", ErrOpenService, err)
	}
	defer m.closeService(svc)

	if state, err := svc.Stop(); err != nil {
		log.WithError(err).Warn("Stop request refused")
	} else {
		log.WithField("state", state.String()).Info("Stopping service")
		m.waitForStop(ctx, log, svc)
	}

	if err := svc.Delete(); err != nil {
		log.WithError(err).Error("Failed to delete service")
		return fmt.Errorf("%w: %v", ErrDeleteService, err)
	}
	log.Info("Service removed")
	return nil
}

// waitForStop polls svc once per interval while it reports StopPending.
func (m *Manager) waitForStop(ctx context.Context, log *logrus.Entry, svc Service) {
	start := m.clock.Now()
	polls := 0
	state := StopPending

	for m.sleep(ctx) {
		current, err := svc.Query()
		if err != nil {
			log.WithError(err).Warn("Failed to query service state")
			break
		}
		polls++
		state = current
		if state != StopPending {
			break
		}
	}

	fields := logrus.Fields{
		"state":   state.String(),
		"polls":   polls,
		"elapsed": m.clock.Now().Sub(start).String(),
	}
	switch {
	case state == Stopped:
		log.WithFields(fields).Info("Service stopped")
	case ctx.Err() != nil:
		log.WithFields(fields).Warn("Stopped waiting for service to stop")
	default:
		log.WithFields(fields).Warn("Service failed to stop")
	}
}

// sleep waits one poll interval and reports false if ctx ended first.
func (m *Manager) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-m.clock.After(m.pollInterval):
		return true
	}
}

// Run runs the current process as the service until the control manager
// stops it.
func (m *Manager) Run(run func(ctx context.Context) error) error {
	m.logger.WithFields(logrus.Fields{
		"function": "Run",
		"service":  m.record.Name,
	}).Info("Running as service")
	return m.host.Serve(m.record.Name, run)
}

func (m *Manager) closeDatabase(db Database) {
	if err := db.Close(); err != nil {
		m.logger.WithError(err).Warn("Failed to close service control manager")
	}
}

func (m *Manager) closeService(svc Service) {
	if err := svc.Close(); err != nil {
		m.logger.WithError(err).Warn("Failed to close service handle")
	}
}
