//go:build !windows

package service

// NewSystemHost returns ErrUnsupported: only Windows has a service control
// manager this package drives.
func NewSystemHost() (Host, error) {
	return nil, ErrUnsupported
}
