package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/service"
)

// authDeadline bounds how long a fresh connection may sit unauthenticated.
const authDeadline = 10 * time.Second

// authFrame is the first client frame on a new connection.
type authFrame struct {
	Token string `json:"token"`
}

// Upgrade gates the HTTP->WebSocket upgrade.
func Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler returns the websocket handler for GET /ws. The token is verified
// once at handshake time; the resulting principal stays bound to the
// connection for its whole life, so expiry is not re-checked mid-connection.
func Handler(hub *Hub, tokens *service.TokenService) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		// The credential arrives in the first frame, not a header: browser
		// WebSocket clients can't set Authorization on the upgrade request.
		_ = conn.SetReadDeadline(time.Now().Add(authDeadline))

		var frame authFrame
		if _, raw, err := conn.ReadMessage(); err != nil || json.Unmarshal(raw, &frame) != nil {
			writeAuthError(conn, "expected auth frame")
			return
		}

		claims, err := tokens.Verify(frame.Token)
		if err != nil {
			writeAuthError(conn, "invalid or expired token")
			return
		}
		_ = conn.SetReadDeadline(time.Time{})

		c := hub.register(claims.UserID, claims.Role)
		defer hub.unregister(c)

		_ = conn.WriteJSON(Event{Event: "connected"})

		// Writer: one goroutine owns all writes after the handshake.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range c.send {
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}()

		// Reader: the channel is push-only; inbound frames are discarded but
		// the read loop notices the peer going away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.unregister(c)
		<-done
		log.Printf("realtime: connection closed for user %s", claims.UserID)
	})
}

func writeAuthError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(Event{Event: "auth_error", Payload: fiber.Map{"error": msg}})
	_ = conn.Close()
}
