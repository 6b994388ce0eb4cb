package service

import "context"

// Record describes the service to install.
type Record struct {
	Name        string
	DisplayName string
	Account     string
	Password    string
}

// State is a service's reported run state.
type State int

const (
	Stopped State = iota + 1
	StartPending
	StopPending
	Running
	ContinuePending
	PausePending
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case StartPending:
		return "StartPending"
	case StopPending:
		return "StopPending"
	case Running:
		return "Running"
	case ContinuePending:
		return "ContinuePending"
	case PausePending:
		return "PausePending"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Access is a set of rights requested when opening the control manager or
// a service.
type Access uint32

const (
	AccessConnect Access = 1 << iota
	AccessCreateService
	AccessQuery
	AccessStop
	AccessDelete
)

// Host is a service control manager.
type Host interface {
	// Connect opens the control manager with the given rights.
	Connect(access Access) (Database, error)
	// Serve runs the current process as the named service until the
	// manager asks it to stop, then cancels run's context and waits for
	// run to return.
	Serve(name string, run func(ctx context.Context) error) error
}

// Database is an open connection to the control manager.
type Database interface {
	// OpenService returns ErrNotInstalled when the service does not exist.
	OpenService(name string, access Access) (Service, error)
	// CreateService registers an auto-start, own-process service that runs
	// exePath.
	CreateService(record Record, exePath string) (Service, error)
	Close() error
}

// Service is an open service handle.
type Service interface {
	// Stop sends the stop control and returns the state reported with it.
	Stop() (State, error)
	Query() (State, error)
	// Delete marks the service for deletion.
	Delete() error
	Close() error
}
