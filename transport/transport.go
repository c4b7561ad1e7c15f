// Package transport carries APDUs over a websocket. Every binary message is
// exactly one command or one response, so no framing happens here.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readBuffer  = 1024
	writeBuffer = 1024

	// A short APDU never exceeds 5 + 255 bytes, a response 256 + 2.
	readLimit = 512

	writeTimeout = 5 * time.Second
)

// Handler processes one raw command APDU and returns the raw response.
// *walletapp.App satisfies it.
type Handler interface {
	Exchange(ctx context.Context, command []byte) []byte
}

// Server accepts websocket connections and feeds their messages to a Handler.
type Server struct {
	handler  Handler
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewServer(handler Handler, logger *slog.Logger) *Server {

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuffer,
			WriteBufferSize: writeBuffer,
		},
		log: logger,
	}

}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	conn, err := s.upgrader.Upgrade(w, r, nil)

	if err != nil {
		s.log.Debug("WebSocket upgrade failed", "err", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(readLimit)

	s.log.Info("Host connected", "remote", conn.RemoteAddr())

	for {

		kind, command, err := conn.ReadMessage()

		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("Read failed", "remote", conn.RemoteAddr(), "err", err)
			}
			s.log.Info("Host disconnected", "remote", conn.RemoteAddr())
			return
		}

		if kind != websocket.BinaryMessage {
			s.log.Warn("Dropping non-binary message", "remote", conn.RemoteAddr())
			continue
		}

		response := s.handler.Exchange(r.Context(), command)

		conn.SetWriteDeadline(time.Now().Add(writeTimeout))

		if err := conn.WriteMessage(websocket.BinaryMessage, response); err != nil {
			s.log.Debug("Write failed", "remote", conn.RemoteAddr(), "err", err)
			return
		}
	}

}

// ListenAndServe serves the websocket endpoint on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, server *Server) error {

	httpServer := &http.Server{Addr: addr, Handler: server, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)

	go func() {
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}

}

// Conn is the host end of a websocket APDU link.
type Conn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to an emulator, e.g. ws://127.0.0.1:9998.
func Dial(ctx context.Context, url string) (*Conn, error) {

	dialer := websocket.Dialer{
		ReadBufferSize:   readBuffer,
		WriteBufferSize:  writeBuffer,
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)

	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	return &Conn{conn: conn}, nil

}

// Exchange sends one command and waits for its response. The wait has no
// deadline because the device may be waiting on its user.
func (c *Conn) Exchange(command []byte) ([]byte, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if err := c.conn.WriteMessage(websocket.BinaryMessage, command); err != nil {
		return nil, err
	}

	kind, response, err := c.conn.ReadMessage()

	if err != nil {
		return nil, err
	}

	if kind != websocket.BinaryMessage {
		return nil, errors.New("unexpected non-binary response")
	}

	return response, nil

}

func (c *Conn) Close() error {

	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))

	return c.conn.Close()

}
