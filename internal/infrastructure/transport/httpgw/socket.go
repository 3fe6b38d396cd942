package httpgw

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/dispatch"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The envelope carries its own token; origin checks belong to
	// deployments that put the gateway behind a browser.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleSocket serves the duplex transport: each text frame is one request
// envelope, each reply frame one tagged result. Frames from one connection
// are handled sequentially, so a client observes its own operations in
// submission order; connections run concurrently with each other.
func handleSocket(d *dispatch.Dispatcher, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := c.Request().Context()
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Msg("websocket closed unexpectedly")
				}
				return nil
			}

			var env dispatch.Envelope
			if err := json.Unmarshal(frame, &env); err != nil {
				if writeErr := conn.WriteJSON(dispatch.Reply{
					Result: dispatch.BadRequest("Malformed request envelope."),
				}); writeErr != nil {
					return nil
				}
				continue
			}

			res := d.Dispatch(ctx, env)
			if err := conn.WriteJSON(dispatch.Reply{Seq: env.Seq, Result: res}); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				return nil
			}
		}
	}
}
