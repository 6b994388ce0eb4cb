package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Flags are the startup switches that decide the service installation.
type Flags struct {
	NoUI         bool
	Headless     bool
	RunAsService bool
}

// Decision is the outcome of Reconcile.
type Decision struct {
	// RunAsService is set when the caller should hand control to Run.
	RunAsService bool
	// Installed is set when Reconcile installed the service.
	Installed bool
	// Removed is set when Reconcile removed the service.
	Removed bool
}

// Reconcile brings the installation in line with flags. It runs
// synchronously and must complete before the message loop starts.
func (m *Manager) Reconcile(ctx context.Context, flags Flags) (Decision, error) {
	var d Decision
	log := m.logger.WithFields(logrus.Fields{
		"function":       "Reconcile",
		"no_ui":          flags.NoUI,
		"headless":       flags.Headless,
		"run_as_service": flags.RunAsService,
	})

	if flags.RunAsService {
		if !flags.NoUI || !flags.Headless {
			log.Debug("Service mode needs a hidden headless run; leaving installation alone")
			return d, nil
		}
		installed, err := m.Installed()
		if err != nil {
			return d, err
		}
		if !installed {
			if err := m.Install(); err != nil {
				return d, err
			}
			d.Installed = true
		}
		d.RunAsService = true
		return d, nil
	}

	installed, err := m.Installed()
	if err != nil {
		return d, err
	}
	if installed {
		if err := m.Remove(ctx); err != nil {
			return d, err
		}
		d.Removed = true
	}
	return d, nil
}
