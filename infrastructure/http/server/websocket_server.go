package server

import (
	"clinic-chat/auth"
	"clinic-chat/contract"
	"clinic-chat/domain/chat"
	"clinic-chat/domain/event"
	"clinic-chat/errors"
	"clinic-chat/services"
	"clinic-chat/sink"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	identityEvent    = "identity"
	subscribeEvent   = "subscribe"
	unsubscribeEvent = "unsubscribe"
	ackEvent         = "ack"
	errorEvent       = "error"
)

// clientMessage is any frame sent by the client; fields depend on Event.
type clientMessage struct {
	Event         string      `json:"event"`
	AccountID     string      `json:"accountId,omitempty"`
	RoomID        chat.RoomID `json:"roomId,omitempty"`
	PeerAccountID string      `json:"peerAccountId,omitempty"`
}

type serverMessage struct {
	Event   string                `json:"event"`
	For     string                `json:"for,omitempty"`
	RoomID  chat.RoomID           `json:"roomId,omitempty"`
	Error   string                `json:"error,omitempty"`
	Message *chat.EnrichedMessage `json:"message,omitempty"`
}

type WebsocketServer struct {
	log                  *slog.Logger
	chatService          services.IChatService
	upgrader             websocket.Upgrader
	connectionBufferSize int
}

// NewWebsocketServer accepts handshakes from allowedOrigins only; an empty
// list or "*" accepts any origin.
func NewWebsocketServer(log *slog.Logger, chatService services.IChatService,
	connectionBufferSize int, allowedOrigins []string) *WebsocketServer {
	anyOrigin := len(allowedOrigins) == 0 || lo.Contains(allowedOrigins, "*")
	return &WebsocketServer{
		log:                  log,
		chatService:          chatService,
		connectionBufferSize: connectionBufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || lo.Contains(allowedOrigins, origin)
			},
		},
	}
}

// wsConnection is one upgraded socket. The read pump owns the lifecycle:
// when it stops the connection is purged from the registry and the sink closed,
// which stops the write pump.
type wsConnection struct {
	id         contract.ConnectionID
	account    chat.Account
	conn       *websocket.Conn
	sink       *sink.ConnectionSink
	replies    chan serverMessage
	writerDone chan struct{}
}

// Connect upgrades the request and blocks until the socket closes.
func (s *WebsocketServer) Connect(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		writeError(s.log, w, errors.ErrUnauthenticated)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "account_id", account.ID, "error", err)
		return
	}

	c := &wsConnection{
		id:         contract.ConnectionID(uuid.NewString()),
		account:    account,
		conn:       conn,
		sink:       sink.NewConnectionSink(s.connectionBufferSize),
		replies:    make(chan serverMessage, s.connectionBufferSize),
		writerDone: make(chan struct{}),
	}
	s.chatService.Connect(c.id, c.sink)
	s.log.Debug("Websocket connected", "connection_id", c.id, "account_id", account.ID)

	go s.writePump(c)
	s.readPump(c)
}

func (s *WebsocketServer) readPump(c *wsConnection) {
	defer func() {
		s.chatService.Disconnect(c.id)
		c.sink.Close()
		_ = c.conn.Close()
		s.log.Debug("Websocket disconnected", "connection_id", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("Websocket read failed", "connection_id", c.id, "error", err)
			}
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.reply(c, serverMessage{Event: errorEvent, Error: fmt.Sprintf("%v: malformed frame", errors.ErrInvalidInput)})
			continue
		}
		s.reply(c, s.handle(c, msg))
	}
}

func (s *WebsocketServer) handle(c *wsConnection, msg clientMessage) serverMessage {
	var err error
	switch msg.Event {
	case identityEvent:
		err = s.chatService.Identify(c.id, c.account, msg.AccountID)
	case subscribeEvent:
		err = s.chatService.Subscribe(c.id, msg.RoomID, msg.PeerAccountID)
	case unsubscribeEvent:
		s.chatService.Unsubscribe(c.id, msg.RoomID)
	default:
		err = fmt.Errorf("%w: unknown event %q", errors.ErrInvalidInput, msg.Event)
	}
	if err != nil {
		s.log.Debug("Websocket event refused", "connection_id", c.id, "event", msg.Event, "error", err)
		return serverMessage{Event: errorEvent, For: msg.Event, RoomID: msg.RoomID, Error: err.Error()}
	}
	return serverMessage{Event: ackEvent, For: msg.Event, RoomID: msg.RoomID}
}

func (s *WebsocketServer) reply(c *wsConnection, msg serverMessage) {
	select {
	case c.replies <- msg:
	case <-c.writerDone:
	}
}

func (s *WebsocketServer) writePump(c *wsConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.writerDone)
		_ = c.conn.Close()
	}()

	for {
		var out serverMessage
		select {
		case <-c.sink.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case evt := <-c.sink.Events():
			posted, ok := evt.(event.MessagePosted)
			if !ok {
				continue
			}
			out = serverMessage{Event: evt.Name(), RoomID: evt.RoomID(), Message: &posted.Message}
		case out = <-c.replies:
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(out); err != nil {
			s.log.Warn("Websocket write failed", "connection_id", c.id, "error", err)
			return
		}
	}
}
