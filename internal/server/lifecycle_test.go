package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockService struct {
	started atomic.Bool
	stopped atomic.Bool
	startFn func() error
	stopErr error
	done    chan struct{}
	once    sync.Once
	order   *[]string
	name    string
	mu      *sync.Mutex
}

func newMockService(name string, order *[]string, mu *sync.Mutex) *mockService {
	return &mockService{done: make(chan struct{}), order: order, name: name, mu: mu}
}

func (m *mockService) Start() error {
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn()
	}
	<-m.done
	return nil
}

func (m *mockService) Stop(context.Context) error {
	m.stopped.Store(true)
	if m.order != nil {
		m.mu.Lock()
		*m.order = append(*m.order, m.name)
		m.mu.Unlock()
	}
	m.once.Do(func() { close(m.done) })
	return m.stopErr
}

func waitStarted(t *testing.T, svcs ...*mockService) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, s := range svcs {
			if !s.started.Load() {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLifecycleStartsAndStopsServicesInReverse(t *testing.T) {
	var (
		order []string
		mu    sync.Mutex
	)
	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	svc1 := newMockService("http", &order, &mu)
	svc2 := newMockService("grpc", &order, &mu)
	lc.Add("http", svc1)
	lc.Add("grpc", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	waitStarted(t, svc1, svc2)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}

	assert.True(t, svc1.stopped.Load())
	assert.True(t, svc2.stopped.Load())
	assert.Equal(t, []string{"grpc", "http"}, order)
}

func TestLifecycleStopsOnServiceFailure(t *testing.T) {
	boom := errors.New("listen failed")
	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	healthy := newMockService("http", nil, nil)
	failing := newMockService("grpc", nil, nil)
	failing.startFn = func() error { return boom }
	lc.Add("http", healthy)
	lc.Add("grpc", failing)

	err := lc.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, healthy.stopped.Load())
}

func TestLifecycleReportsStopErrors(t *testing.T) {
	stopBoom := errors.New("drain timeout")
	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	svc := newMockService("http", nil, nil)
	svc.stopErr = stopBoom
	lc.Add("http", svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	waitStarted(t, svc)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, stopBoom)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
}

func TestFuncService(t *testing.T) {
	started := false
	stopped := false

	svc := &FuncService{
		StartFn: func() error {
			started = true
			return nil
		},
		StopFn: func(context.Context) error {
			stopped = true
			return nil
		},
	}

	assert.NoError(t, svc.Start())
	assert.True(t, started)

	assert.NoError(t, svc.Stop(context.Background()))
	assert.True(t, stopped)
}
