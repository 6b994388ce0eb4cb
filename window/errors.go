package window

import "errors"

// Construction errors.
var (
	// ErrAlreadyCreated indicates Create was called on a live window.
	ErrAlreadyCreated = errors.New("window already created")

	// ErrClassRegistration indicates the window class could not be registered.
	ErrClassRegistration = errors.New("window class registration failed")

	// ErrCreateWindow indicates the backend could not create the main window.
	ErrCreateWindow = errors.New("main window creation failed")

	// ErrCreateControl indicates a required child control could not be created.
	ErrCreateControl = errors.New("child control creation failed")
)

// State errors.
var (
	// ErrNoWindow indicates an operation that needs a live window was called
	// before Create or after destruction.
	ErrNoWindow = errors.New("window does not exist")

	// ErrUnknownWindow indicates a backend was given a handle it does not own.
	ErrUnknownWindow = errors.New("unknown window handle")
)
