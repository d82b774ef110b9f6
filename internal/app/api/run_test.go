package api

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildStores_MemoryWithoutDatabase(t *testing.T) {
	stores, err := BuildStores(context.Background(), Config{}, discard)
	require.NoError(t, err)
	assert.NotNil(t, stores.Products)
	assert.NotNil(t, stores.Orders)
	assert.Nil(t, stores.DB)
	stores.Close()
}

func TestBuildStores_UnreachableDatabaseFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// port 1 on localhost refuses connections
	_, err := BuildStores(ctx, Config{PostgresDSN: "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"}, discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to postgres")
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/livez", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	srv := &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, discard) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/livez")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
