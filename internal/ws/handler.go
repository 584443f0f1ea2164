package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nineball/backend/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // session access is gated by the signed token
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// WSMessage is the envelope for client-to-server input events.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AimData carries the pointer position for aim messages.
type AimData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Client couples one WebSocket connection to a session: frames flow
// out, input events flow in. The connection owns no simulation state.
type Client struct {
	conn    *websocket.Conn
	session *game.Session
	frames  chan []byte
}

// Serve upgrades the request and attaches the connection to a session.
func Serve(c *gin.Context, session *game.Session) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:    conn,
		session: session,
		frames:  session.Subscribe(),
	}

	log.Printf("[WS] Client connected to session %s", session.ID)

	go client.writePump()
	go client.readPump()
}

// writePump streams frames to the connection and keeps it alive with
// pings. Exits when the session ends or the connection breaks.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.frames:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Session finished.
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump translates incoming messages into simulation input events.
func (c *Client) readPump() {
	defer func() {
		c.session.Unsubscribe(c.frames)
		c.conn.Close()
		log.Printf("[WS] Client disconnected from session %s", c.session.ID)
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error on session %s: %v", c.session.ID, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[WS] Bad message on session %s: %v", c.session.ID, err)
			continue
		}

		switch msg.Type {
		case game.InputAim:
			var aim AimData
			if err := json.Unmarshal(msg.Data, &aim); err != nil {
				continue
			}
			c.session.HandleInput(game.InputEvent{Kind: game.InputAim, X: aim.X, Y: aim.Y})
		case game.InputShoot, game.InputGuideline, game.InputPowerUp, game.InputPowerDown, game.InputQuit:
			c.session.HandleInput(game.InputEvent{Kind: msg.Type})
		default:
			log.Printf("[WS] Unknown message type %q on session %s", msg.Type, c.session.ID)
		}
	}
}
