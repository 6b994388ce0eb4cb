package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecord = Record{
	Name:        "3DStreamingRenderingService",
	DisplayName: "3D Streaming Rendering Service",
	Account:     `NT AUTHORITY\NetworkService`,
}

func newTestManager(host *fakeHost, clock *fakeClock) *Manager {
	return NewManager(host, testRecord,
		WithTimeProvider(clock),
		WithExecutable(func() (string, error) { return `C:\app\callwindow.exe`, nil }),
	)
}

func assertHandlesClosed(t *testing.T, host *fakeHost) {
	t.Helper()
	db, svc := host.handles()
	assert.Zero(t, db, "open control manager handles")
	assert.Zero(t, svc, "open service handles")
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager(&fakeHost{}, testRecord)
	assert.Equal(t, DefaultPollInterval, m.pollInterval)
	assert.Equal(t, testRecord, m.Record())
	assert.NotNil(t, m.executable)
}

func TestManager_Installed(t *testing.T) {
	host := &fakeHost{}
	m := newTestManager(host, &fakeClock{})

	installed, err := m.Installed()
	require.NoError(t, err)
	assert.False(t, installed)

	host.installed = true
	installed, err = m.Installed()
	require.NoError(t, err)
	assert.True(t, installed)
	assert.Equal(t, AccessQuery, host.access[len(host.access)-1])
	assertHandlesClosed(t, host)

	host.openErr = errors.New("access denied")
	_, err = m.Installed()
	assert.ErrorIs(t, err, ErrOpenService)
	assertHandlesClosed(t, host)
}

func TestManager_Install(t *testing.T) {
	host := &fakeHost{}
	m := newTestManager(host, &fakeClock{})

	require.NoError(t, m.Install())
	require.Len(t, host.created, 1)
	assert.Equal(t, testRecord, host.created[0])
	assert.Equal(t, `C:\app\callwindow.exe`, host.createdPath)
	assertHandlesClosed(t, host)
}

func TestManager_InstallFailures(t *testing.T) {
	tests := []struct {
		name    string
		host    *fakeHost
		exeErr  error
		wantErr error
	}{
		{"executable", &fakeHost{}, errors.New("no path"), ErrExecutablePath},
		{"connect", &fakeHost{connectErr: errors.New("denied")}, nil, ErrConnect},
		{"create", &fakeHost{createErr: errors.New("exists")}, nil, ErrCreateService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.host, testRecord, WithExecutable(func() (string, error) {
				return "app.exe", tt.exeErr
			}))
			assert.ErrorIs(t, m.Install(), tt.wantErr)
			assertHandlesClosed(t, tt.host)
		})
	}
}

func TestManager_InvalidRecord(t *testing.T) {
	m := NewManager(&fakeHost{}, Record{})

	_, err := m.Installed()
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorIs(t, m.Install(), ErrInvalidRecord)
	assert.ErrorIs(t, m.Remove(context.Background()), ErrInvalidRecord)
}

func TestManager_RemoveWaitsForStop(t *testing.T) {
	tests := []struct {
		name        string
		states      []State
		wantQueries int
	}{
		{"already stopped", []State{Stopped}, 1},
		{"stop pending three polls", []State{StopPending, StopPending, StopPending, Stopped}, 4},
		{"settles in another state", []State{StopPending, Running}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{installed: true, stopStates: tt.states}
			clock := &fakeClock{}
			m := newTestManager(host, clock)

			require.NoError(t, m.Remove(context.Background()))
			assert.True(t, host.stopped)
			assert.True(t, host.deleted)
			assert.Equal(t, tt.wantQueries, host.queries)
			assert.Equal(t, tt.wantQueries, clock.waitCount(), "one interval before each poll")
			assert.Equal(t, AccessStop|AccessQuery|AccessDelete, host.access[0])
			assertHandlesClosed(t, host)
		})
	}
}

func TestManager_RemoveNeverStopping(t *testing.T) {
	host := &fakeHost{installed: true, stopStates: []State{StopPending}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := &fakeClock{cancelAfter: 50, cancel: cancel}
	m := newTestManager(host, clock)

	require.NoError(t, m.Remove(ctx))
	assert.Equal(t, 49, host.queries)
	assert.True(t, host.deleted, "service is deleted even though it never stopped")
	assertHandlesClosed(t, host)
}

func TestManager_RemoveStopRefused(t *testing.T) {
	host := &fakeHost{installed: true, stopErr: errors.New("not running")}
	clock := &fakeClock{}
	m := newTestManager(host, clock)

	require.NoError(t, m.Remove(context.Background()))
	assert.Zero(t, host.queries)
	assert.Zero(t, clock.waitCount())
	assert.True(t, host.deleted)
	assertHandlesClosed(t, host)
}

func TestManager_RemoveQueryFailure(t *testing.T) {
	host := &fakeHost{installed: true, queryErr: errors.New("gone")}
	m := newTestManager(host, &fakeClock{})

	require.NoError(t, m.Remove(context.Background()))
	assert.True(t, host.deleted)
	assertHandlesClosed(t, host)
}

func TestManager_RemoveReportsDeleteFailure(t *testing.T) {
	host := &fakeHost{installed: true, deleteErr: errors.New("marked for deletion")}
	m := newTestManager(host, &fakeClock{})

	assert.ErrorIs(t, m.Remove(context.Background()), ErrDeleteService)
	assert.True(t, host.stopped)
	assertHandlesClosed(t, host)
}

func TestManager_RemoveNotInstalled(t *testing.T) {
	host := &fakeHost{}
	m := newTestManager(host, &fakeClock{})

	err := m.Remove(context.Background())
	assert.ErrorIs(t, err, ErrOpenService)
	assert.False(t, host.stopped)
	assertHandlesClosed(t, host)
}

func TestManager_RemoveUsesRealClock(t *testing.T) {
	host := &fakeHost{installed: true, stopStates: []State{StopPending, Stopped}}
	m := NewManager(host, testRecord, WithPollInterval(time.Millisecond))

	start := time.Now()
	require.NoError(t, m.Remove(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
	assert.Equal(t, 2, host.queries)
}

func TestManager_Run(t *testing.T) {
	host := &fakeHost{}
	m := newTestManager(host, &fakeClock{})

	ran := false
	err := m.Run(func(ctx context.Context) error {
		ran = true
		<-ctx.Done()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, testRecord.Name, host.served)
}
