package services

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/alumnifund/AlumniFund/utils"
)

// DonationEvent is the message pushed to live-feed subscribers when a
// donation is credited.
type DonationEvent struct {
	CampaignID    uint      `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	DonorName     string    `json:"donor_name"`
	Amount        float64   `json:"amount"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// LiveFeed fans credited donations out to connected WebSocket clients.
type LiveFeed struct {
	upgrader   websocket.Upgrader
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.Mutex
}

// NewLiveFeed creates the hub and starts its dispatch loop.
func NewLiveFeed() *LiveFeed {
	feed := &LiveFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}

	go feed.run()
	return feed
}

func (f *LiveFeed) run() {
	for {
		select {
		case conn := <-f.register:
			f.mutex.Lock()
			f.clients[conn] = true
			f.mutex.Unlock()
			utils.LogInfo("Live feed client connected, total: %d", f.ClientCount())

		case conn := <-f.unregister:
			f.mutex.Lock()
			if _, ok := f.clients[conn]; ok {
				delete(f.clients, conn)
				conn.Close()
			}
			f.mutex.Unlock()

		case message := <-f.broadcast:
			f.mutex.Lock()
			for conn := range f.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(f.clients, conn)
				}
			}
			f.mutex.Unlock()
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (f *LiveFeed) ClientCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.clients)
}

// HandleWS upgrades the request and keeps the connection registered until
// the client goes away. Subscribers only listen; inbound frames are
// discarded.
func (f *LiveFeed) HandleWS(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError("Live feed upgrade failed: %v", err)
		return
	}

	f.register <- conn

	defer func() {
		f.unregister <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastDonation pushes a credited donation to all subscribers. Drops
// the event instead of blocking when the buffer is full.
func (f *LiveFeed) BroadcastDonation(event DonationEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		utils.LogError("Live feed marshal failed: %v", err)
		return
	}

	select {
	case f.broadcast <- message:
	default:
		utils.LogError("Live feed buffer full, dropping event for campaign %d", event.CampaignID)
	}
}
