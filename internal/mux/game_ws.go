package mux

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = time.Second * 10
	pongWait   = time.Second * 60
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// feed fans game events out to every connected websocket client
type feed struct {
	mu      sync.Mutex
	clients map[*feedClient]bool
}

type feedClient struct {
	conn *websocket.Conn
	send chan interface{}
}

func newFeed() *feed {
	return &feed{
		clients: make(map[*feedClient]bool),
	}
}

// broadcast sends the message to every client. Clients that cannot keep up
// are dropped rather than blocking the game.
func (f *feed) broadcast(msg interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for client := range f.clients {
		select {
		case client.send <- msg:
		default:
			close(client.send)
			delete(f.clients, client)
		}
	}
}

func (f *feed) register(client *feedClient) {
	f.mu.Lock()
	f.clients[client] = true
	f.mu.Unlock()
}

func (f *feed) unregister(client *feedClient) {
	f.mu.Lock()
	if _, ok := f.clients[client]; ok {
		close(client.send)
		delete(f.clients, client)
	}
	f.mu.Unlock()
}

func (m *Mux) getGameWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		client := &feedClient{
			conn: conn,
			send: make(chan interface{}, 256),
		}
		instance.feed.register(client)

		go client.writePump()
		go client.readPump(instance.feed)
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).Warn("could not write to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages. The socket is a one-way event feed,
// but we still need the read loop to process control frames.
func (c *feedClient) readPump(f *feed) {
	defer func() {
		f.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
