package render

import "errors"

// Attachment errors. Both indicate programmer error.
var (
	// ErrAlreadyAttached indicates Attach was called on an attached renderer.
	ErrAlreadyAttached = errors.New("renderer already attached to a source")

	// ErrNotAttached indicates Detach was called on a renderer with no source.
	ErrNotAttached = errors.New("renderer not attached to a source")

	// ErrNilSource indicates Attach was called with a nil source.
	ErrNilSource = errors.New("frame source cannot be nil")
)
