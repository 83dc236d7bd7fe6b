package bridge

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// SocketBridge accepts triggers as WebSocket text messages on /trigger.
// Each message carries one locator. Multiple clients may connect; their
// messages all funnel into the same trigger channel.
type SocketBridge struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewSocketBridge creates a bridge listening on addr. A nil logger falls
// back to the default logger.
func NewSocketBridge(addr string, logger *log.Logger) *SocketBridge {
	if logger == nil {
		logger = log.Default()
	}
	return &SocketBridge{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "bridge"),
	}
}

// Run serves the WebSocket endpoint until the context is cancelled.
func (b *SocketBridge) Run(ctx context.Context, triggers chan<- string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/trigger", b.handleTrigger(ctx, triggers))

	srv := &http.Server{Addr: b.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	b.logger.Info("trigger endpoint listening", "addr", b.addr, "path", "/trigger")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (b *SocketBridge) handleTrigger(ctx context.Context, triggers chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		b.logger.Info("trigger client connected", "remote", conn.RemoteAddr())

		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				b.logger.Debug("trigger client disconnected", "error", err)
				return
			}
			if mt != websocket.TextMessage {
				continue
			}
			locator := strings.TrimSpace(string(msg))
			if locator == "" {
				continue
			}
			select {
			case triggers <- locator:
				b.logger.Debug("trigger received", "locator", locator)
			case <-ctx.Done():
				return
			}
		}
	}
}
