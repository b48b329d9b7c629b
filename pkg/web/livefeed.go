// Package web - websocket live feed of filter violations.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The logs middleware already filters by host
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveFeed fans violation events out to connected websocket clients. Slow
// clients are disconnected instead of blocking the rest.
type LiveFeed struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan []byte
}

var (
	feed     *LiveFeed
	feedOnce sync.Once
)

// Feed returns the global live feed
func Feed() *LiveFeed {
	feedOnce.Do(func() {
		feed = &LiveFeed{clients: make(map[*websocket.Conn]chan []byte)}
	})
	return feed
}

// Publish sends a violation event to every connected client. The payload
// carries term, kind and action but never the message content.
func (f *LiveFeed) Publish(v *models.Violation) {
	payload, err := json.Marshal(gin.H{
		"type":      "violation",
		"violation": v,
	})
	if err != nil {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for conn, ch := range f.clients {
		select {
		case ch <- payload:
		default:
			// Client is not keeping up, drop it
			go f.drop(conn)
		}
	}
}

// ClientCount returns the number of connected feed clients
func (f *LiveFeed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

func (f *LiveFeed) add(conn *websocket.Conn) chan []byte {
	ch := make(chan []byte, 16)
	f.mu.Lock()
	f.clients[conn] = ch
	f.mu.Unlock()
	return ch
}

func (f *LiveFeed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	ch, ok := f.clients[conn]
	if ok {
		delete(f.clients, conn)
		close(ch)
	}
	f.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// liveFeedHandler upgrades the connection and streams violation events
func liveFeedHandler(c *gin.Context) {
	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Error actualizando a websocket: "+err.Error(), "WebServer")
		return
	}

	f := Feed()
	ch := f.add(conn)
	logger.Debug("Cliente conectado al feed de infracciones", "WebServer")

	// Reader: consume control frames, detect disconnect
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.drop(conn)
				return
			}
		}
	}()

	// Writer: forward events, ping on idle
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case payload, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					f.drop(conn)
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					f.drop(conn)
					return
				}
			}
		}
	}()
}
