package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_ServesAndShutsDown(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = config.StorageMemory

	app := newApp(cfg, logging.NewNop(), memstore.New())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health"
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
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewApp_UnknownStorage(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = "redis"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
