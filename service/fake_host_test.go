package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeHost is an in-memory control manager that tracks open handles.
type fakeHost struct {
	mu sync.Mutex

	installed   bool
	created     []Record
	createdPath string
	access      []Access

	// stopStates are returned by successive Query calls; the last one
	// repeats.
	stopStates []State
	queries    int
	stopped    bool
	deleted    bool

	connectErr error
	createErr  error
	openErr    error
	stopErr    error
	queryErr   error
	deleteErr  error

	openDB  int
	openSvc int

	served string
}

func (h *fakeHost) Connect(access Access) (Database, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connectErr != nil {
		return nil, h.connectErr
	}
	h.openDB++
	return &fakeDatabase{host: h}, nil
}

func (h *fakeHost) Serve(name string, run func(ctx context.Context) error) error {
	h.served = name
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return run(ctx)
}

func (h *fakeHost) handles() (db, svc int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openDB, h.openSvc
}

type fakeDatabase struct {
	host   *fakeHost
	closed bool
}

func (d *fakeDatabase) OpenService(name string, access Access) (Service, error) {
	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()
	h.access = append(h.access, access)
	if h.openErr != nil {
		return nil, h.openErr
	}
	if !h.installed {
		return nil, ErrNotInstalled
	}
	h.openSvc++
	return &fakeService{host: h}, nil
}

func (d *fakeDatabase) CreateService(record Record, exePath string) (Service, error) {
	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.createErr != nil {
		return nil, h.createErr
	}
	h.installed = true
	h.created = append(h.created, record)
	h.createdPath = exePath
	h.openSvc++
	return &fakeService{host: h}, nil
}

func (d *fakeDatabase) Close() error {
	h := d.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if d.closed {
		return errors.New("database closed twice")
	}
	d.closed = true
	h.openDB--
	return nil
}

type fakeService struct {
	host   *fakeHost
	closed bool
}

func (s *fakeService) Stop() (State, error) {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopErr != nil {
		return 0, h.stopErr
	}
	h.stopped = true
	return StopPending, nil
}

func (s *fakeService) Query() (State, error) {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.queryErr != nil {
		return 0, h.queryErr
	}
	h.queries++
	if len(h.stopStates) == 0 {
		return Stopped, nil
	}
	idx := h.queries - 1
	if idx >= len(h.stopStates) {
		idx = len(h.stopStates) - 1
	}
	return h.stopStates[idx], nil
}

func (s *fakeService) Delete() error {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.deleteErr != nil {
		return h.deleteErr
	}
	h.deleted = true
	h.installed = false
	return nil
}

func (s *fakeService) Close() error {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.closed {
		return errors.New("service closed twice")
	}
	s.closed = true
	h.openSvc--
	return nil
}

// fakeClock fires every wait immediately and counts them. When cancelAfter
// is set, the cancel function runs on that wait instead of firing it.
type fakeClock struct {
	mu          sync.Mutex
	now         time.Time
	waits       int
	cancelAfter int
	cancel      context.CancelFunc
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits++
	ch := make(chan time.Time, 1)
	if c.cancelAfter > 0 && c.waits >= c.cancelAfter {
		c.cancel()
		return ch
	}
	c.now = c.now.Add(d)
	ch <- c.now
	return ch
}

func (c *fakeClock) waitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waits
}
