package server

import (
	"net/http"
	"time"

	"vicecity-server/internal/engine"
	"vicecity-server/pkg/api"
	"vicecity-server/pkg/logger"
	"vicecity-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game    *engine.GameService
	Conn    *websocket.Conn
	Session string

	codec   frameCodec
	updates chan api.Snapshot
	log     *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn, codec frameCodec) *Client {
	session := utils.GenerateID()
	return &Client{
		Game:    game,
		Conn:    conn,
		Session: session,
		codec:   codec,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"session":   session,
			"codec":     codec.Name(),
		}),
	}
}

// start подписывает сессию и запускает пампы
func (c *Client) start() {
	c.updates = c.Game.Join(c.Session)
	c.log.WithField("remote", c.Conn.RemoteAddr().String()).Info("Client connected")

	go c.writePump()
	go c.readPump()
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		// Счётчик пропусков живёт до Leave
		dropped := c.Game.Hub.Dropped(c.Session)

		// Leave закрывает канал обновлений, writePump завершится сам
		c.Game.Leave(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.WithField("dropped_frames", dropped).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		// Кривая команда не рвёт соединение
		if err := c.Game.ProcessCommand(c.Session, cmd); err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
		}
	}
}

// writePump отправляет кадры клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case snap, ok := <-c.updates:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := c.codec.Encode(snap)
			if err != nil {
				c.log.WithError(err).Error("encode snapshot failed")
				return
			}
			if err := c.Conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				c.log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
