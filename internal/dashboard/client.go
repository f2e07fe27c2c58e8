package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
)

const (
	writeWait      = 1 * time.Second
	pubResolution  = 100 * time.Millisecond
	pingResolution = 500 * time.Millisecond
	pongWait       = pingResolution * 4
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ErrPongDeadlineExceeded reports a client that stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("dashboard: client disconnected, pong deadline exceeded")

// client publishes one generic update stream to a single browser connection,
// trimmed from the teacher's server.go publishEleUpdates: a detached read
// goroutine drives the pong handler and cancels the publish loop on any read
// error, and the publish loop alone does every Write* call, since
// gorilla/websocket forbids concurrent writers on one connection.
type client[T any] struct {
	updates <-chan T
	ws      *websocket.Conn
	rootCtx context.Context
}

func newClient[T any](updates <-chan T, w http.ResponseWriter, r *http.Request) (*client[T], error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: upgrading to websocket: %w", err)
	}
	return &client[T]{updates: updates, ws: ws, rootCtx: r.Context()}, nil
}

// sync runs the read and publish/ping loops until the client disconnects or
// the request context is cancelled. It does not wait on the read goroutine:
// like the teacher's publishEleUpdates, it returns as soon as the publish
// loop does and closes the connection on its way out, which is what
// unblocks a read goroutine still parked in ReadMessage.
func (c *client[T]) sync() error {
	defer c.ws.Close()
	ctx, cancel := context.WithCancel(c.rootCtx)
	defer cancel()
	go c.readLoop(cancel)
	return c.publishLoop(ctx)
}

// readLoop exists only to drive the gorilla/websocket pong handler, which is
// invoked from within ReadMessage; this dashboard never consumes client
// messages itself. Any read error is permanent, so it cancels the publish
// loop rather than retrying.
func (c *client[T]) readLoop(cancel context.CancelFunc) {
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			cancel()
			return
		}
	}
}

func (c *client[T]) publishLoop(ctx context.Context) error {
	pong := make(chan struct{}, 1)
	c.ws.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	ticker := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	lastPublish := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("dashboard: ping: %w", err)
			}
		case <-pong:
			lastPong = time.Now()
		case update, ok := <-c.updates:
			if !ok {
				return nil
			}
			if time.Since(lastPublish) < pubResolution {
				continue
			}
			lastPublish = time.Now()
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("dashboard: setting write deadline: %w", err)
			}
			if err := c.ws.WriteJSON(update); err != nil {
				return fmt.Errorf("dashboard: publish: %w", err)
			}
		}
	}
}
