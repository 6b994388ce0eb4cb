//go:build windows

package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

type scmHost struct{}

// NewSystemHost returns the Windows service control manager.
func NewSystemHost() (Host, error) {
	return scmHost{}, nil
}

func (scmHost) Connect(access Access) (Database, error) {
	var rights uint32
	if access&AccessConnect != 0 {
		rights |= windows.SC_MANAGER_CONNECT
	}
	if access&AccessCreateService != 0 {
		rights |= windows.SC_MANAGER_CREATE_SERVICE
	}
	h, err := windows.OpenSCManager(nil, nil, rights)
	if err != nil {
		return nil, err
	}
	return &scmDatabase{m: &mgr.Mgr{Handle: h}}, nil
}

func (scmHost) Serve(name string, run func(ctx context.Context) error) error {
	return svc.Run(name, &scmHandler{name: name, run: run})
}

type scmDatabase struct {
	m *mgr.Mgr
}

func (d *scmDatabase) OpenService(name string, access Access) (Service, error) {
	var rights uint32
	if access&AccessQuery != 0 {
		rights |= windows.SERVICE_QUERY_STATUS | windows.SERVICE_QUERY_CONFIG
	}
	if access&AccessStop != 0 {
		rights |= windows.SERVICE_STOP
	}
	if access&AccessDelete != 0 {
		rights |= windows.DELETE
	}

	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	h, err := windows.OpenService(d.m.Handle, namePtr, rights)
	if errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST) {
		return nil, ErrNotInstalled
	}
	if err != nil {
		return nil, err
	}
	return &scmService{s: &mgr.Service{Name: name, Handle: h}}, nil
}

func (d *scmDatabase) CreateService(record Record, exePath string) (Service, error) {
	s, err := d.m.CreateService(record.Name, exePath, mgr.Config{
		ServiceType:      windows.SERVICE_WIN32_OWN_PROCESS,
		StartType:        mgr.StartAutomatic,
		ErrorControl:     mgr.ErrorNormal,
		DisplayName:      record.DisplayName,
		ServiceStartName: record.Account,
		Password:         record.Password,
	})
	if err != nil {
		return nil, err
	}
	return &scmService{s: s}, nil
}

func (d *scmDatabase) Close() error {
	return d.m.Disconnect()
}

type scmService struct {
	s *mgr.Service
}

func (s *scmService) Stop() (State, error) {
	status, err := s.s.Control(svc.Stop)
	if err != nil {
		return 0, err
	}
	return fromSvcState(status.State), nil
}

func (s *scmService) Query() (State, error) {
	status, err := s.s.Query()
	if err != nil {
		return 0, err
	}
	return fromSvcState(status.State), nil
}

func (s *scmService) Delete() error {
	return s.s.Delete()
}

func (s *scmService) Close() error {
	return s.s.Close()
}

func fromSvcState(st svc.State) State {
	switch st {
	case svc.Stopped:
		return Stopped
	case svc.StartPending:
		return StartPending
	case svc.StopPending:
		return StopPending
	case svc.Running:
		return Running
	case svc.ContinuePending:
		return ContinuePending
	case svc.PausePending:
		return PausePending
	case svc.Paused:
		return Paused
	}
	return 0
}

// scmHandler adapts a run function to the service dispatcher.
type scmHandler struct {
	name string
	run  func(ctx context.Context) error
}

func (h *scmHandler) Execute(args []string, requests <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	log := logrus.WithFields(logrus.Fields{
		"function": "Execute",
		"service":  h.name,
	})
	changes <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.run(ctx) }()

	changes <- svc.Status{State: svc.Running, Accepts: svc.AcceptStop | svc.AcceptShutdown}

	for {
		select {
		case err := <-done:
			if err != nil {
				log.WithError(err).Error("Service run ended with error")
				return false, 1
			}
			return false, 0

		case req := <-requests:
			switch req.Cmd {
			case svc.Interrogate:
				changes <- req.CurrentStatus
			case svc.Stop, svc.Shutdown:
				log.Info("Stop requested")
				changes <- svc.Status{State: svc.StopPending}
				cancel()
				if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
					log.WithError(err).Error("Service run ended with error")
					return false, 1
				}
				return false, 0
			default:
				log.WithField("cmd", req.Cmd).Warn("Unexpected control request")
			}
		}
	}
}
