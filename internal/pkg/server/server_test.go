package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewGracefulServer(t *testing.T) {
	e := echo.New()
	gs := NewGracefulServer(e, logger.NewNopLogger(), models.ServerConfig{Port: 8080, ReadTimeout: 5, WriteTimeout: 7})

	assert.NotNil(t, gs)
	assert.NotNil(t, gs.Components())
	assert.Equal(t, 5*time.Second, e.Server.ReadTimeout)
	assert.Equal(t, 7*time.Second, e.Server.WriteTimeout)
}

func TestGracefulServer_Run(t *testing.T) {
	port := freePort(t)
	e := echo.New()
	e.HideBanner = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, logger.NewNopLogger(), models.ServerConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: 5})

	var stopped bool
	gs.Components().Register("tracker", func(ctx context.Context) error {
		stopped = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, stopped)
}

func TestGracefulServer_RunListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	e := echo.New()
	e.HideBanner = true
	gs := NewGracefulServer(e, logger.NewNopLogger(), models.ServerConfig{Host: "127.0.0.1", Port: port})

	err = gs.Run(context.Background())
	assert.Error(t, err)
}

func TestShutdownManager_Shutdown(t *testing.T) {
	t.Run("Shutdown with successful cleanup functions", func(t *testing.T) {
		sm := NewShutdownManager(logger.NewNopLogger())
		var results []string

		for _, name := range []string{"cleanup1", "cleanup2", "cleanup3"} {
			name := name
			sm.Register(name, func(ctx context.Context) error {
				results = append(results, name)
				return nil
			})
		}

		err := sm.Shutdown(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"cleanup1", "cleanup2", "cleanup3"}, results)
	})

	t.Run("Shutdown with failing cleanup functions", func(t *testing.T) {
		sm := NewShutdownManager(logger.NewNopLogger())
		var results []string

		sm.Register("cleanup1", func(ctx context.Context) error {
			results = append(results, "cleanup1")
			return nil
		})
		sm.Register("cleanup2", func(ctx context.Context) error {
			results = append(results, "cleanup2")
			return fmt.Errorf("cleanup2 failed")
		})
		sm.Register("cleanup3", func(ctx context.Context) error {
			results = append(results, "cleanup3")
			return nil
		})

		err := sm.Shutdown(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"cleanup1", "cleanup2", "cleanup3"}, results)
	})

	t.Run("Shutdown with no functions", func(t *testing.T) {
		sm := NewShutdownManager(logger.NewNopLogger())
		assert.NoError(t, sm.Shutdown(context.Background()))
	})
}

func TestShutdownManager_ConcurrentRegister(t *testing.T) {
	sm := NewShutdownManager(logger.NewNopLogger())
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sm.Register(fmt.Sprintf("component-%d", i), func(ctx context.Context) error {
				mu.Lock()
				count++
				mu.Unlock()
				return nil
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Equal(t, 20, count)
}
