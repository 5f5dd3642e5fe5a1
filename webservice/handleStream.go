package webservice

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DanDanTheMuffinMan/nova-memory-server/stream"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local-network tool, any origin may observe
	},
}

// streamMessage is what observers send over the socket.
type streamMessage struct {
	Type string `json:"type"`
	// FPS is a pointer so "absent" falls back to the configured default
	// while an explicit non-positive value is rejected.
	FPS *float64 `json:"fps"`
}

const (
	msgStartStream = "start-screen-stream"
	msgStopStream  = "stop-screen-stream"
)

// handleStreamWS owns one observer connection for its whole lifetime. The
// deferred disconnect runs on every exit path, normal or abnormal, so no
// capture loop can outlive its connection.
func (wm *WebMaster) handleStreamWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wm.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	log := wm.log.With(zap.String("conn", connID))
	log.Info("observer connected", zap.String("remote", conn.RemoteAddr().String()))

	// The session loop and this handler both write to the socket;
	// gorilla allows one concurrent writer.
	var writeMu sync.Mutex
	push := func(ev stream.Event) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(ev)
	}

	defer func() {
		wm.streams.Disconnect(connID)
		conn.Close()
		log.Info("observer disconnected")
	}()

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case msgStartStream:
			fps := wm.cfg.Stream.DefaultFPS
			if msg.FPS != nil {
				fps = *msg.FPS
			}
			if err := wm.streams.Start(connID, fps, push); err != nil {
				if pushErr := push(stream.Event{Type: stream.EventError, Error: err.Error()}); pushErr != nil {
					return
				}
			}
		case msgStopStream:
			wm.streams.Stop(connID)
		default:
			if err := push(stream.Event{Type: stream.EventError, Error: "unknown message type " + msg.Type}); err != nil {
				return
			}
		}
	}
}
