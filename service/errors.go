package service

import "errors"

// Host errors.
var (
	// ErrUnsupported indicates there is no service control manager on this
	// platform.
	ErrUnsupported = errors.New("service control manager not supported on this platform")

	// ErrNotInstalled is returned by Database.OpenService when no service
	// with that name exists.
	ErrNotInstalled = errors.New("service not installed")
)

// Manager errors.
var (
	// ErrInvalidRecord indicates a Record without a name.
	ErrInvalidRecord = errors.New("service record has no name")

	// ErrExecutablePath indicates the running executable's path could not be
	// resolved.
	ErrExecutablePath = errors.New("cannot resolve executable path")

	// ErrConnect indicates the service control manager could not be opened.
	ErrConnect = errors.New("cannot connect to service control manager")

	// ErrCreateService indicates service creation was refused.
	ErrCreateService = errors.New("cannot create service")

	// ErrOpenService indicates an installed service could not be opened.
	ErrOpenService = errors.New("cannot open service")

	// ErrDeleteService indicates the service could not be marked for deletion.
	ErrDeleteService = errors.New("cannot delete service")
)
