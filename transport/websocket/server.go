package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flocktogether/flock-backend/internal/entity"
	"github.com/flocktogether/flock-backend/internal/pkg"
)

type gameRegistry interface {
	CreateGame(hostID, hostName string) string
	JoinGame(code, playerID, name string) error
	LeaveGame(code, playerID string) error
	StartGame(code string) error
	PlaceBird(ctx context.Context, code, playerID, birdID string, row, col int) error
	GameSnapshot(code string) (*entity.Game, error)
}

// wsConn is the slice of *websocket.Conn the server writes through; tests
// substitute a recorder.
type wsConn interface {
	WriteJSON(v any) error
}

// client tracks one connection's identity and its current game association.
// Connection state lives here, never on the transport object itself.
type client struct {
	id   string
	conn wsConn

	// gameID and username are read by other connections' goroutines during
	// broadcasts, so they are guarded by Server.mu; use the Server accessors.
	gameID   string
	username string

	// gorilla allows one concurrent writer per connection; broadcasts come
	// from other clients' read goroutines.
	writeMu sync.Mutex
}

func (that *client) send(msg Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	return that.conn.WriteJSON(msg)
}

type Server struct {
	logger   *slog.Logger
	registry gameRegistry
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

func New(logger *slog.Logger, registry gameRegistry) *Server {
	return &Server{
		logger:   logger,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*client),
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	c := &client{
		id:   pkg.GenerateClientID(),
		conn: conn,
	}

	that.register(c)
	defer that.disconnect(c)

	log = log.With("clientID", c.id)
	log.Info("WebSocket connection established")

	if err = c.send(Message{
		Type:    MsgConnectionEstablished,
		Payload: mustMarshal(connectionEstablishedPayload{ClientID: c.id}),
	}); err != nil {
		log.Error("failed to send connection established", "error", err)
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		that.handleMessage(r.Context(), c, raw)
	}
}

// handleMessage - decodes one inbound envelope and dispatches it. Undecodable
// frames are logged and dropped without a reply so a broken peer cannot force
// an error loop.
func (that *Server) handleMessage(ctx context.Context, c *client, raw []byte) {
	log := that.logger.With("method", "handleMessage", "clientID", c.id)

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		return
	}

	switch msg.Type {
	case MsgCreateGame:
		that.handleCreateGame(c, &msg)
	case MsgJoinGame:
		that.handleJoinGame(c, &msg)
	case MsgStartGame:
		that.handleStartGame(c, &msg)
	case MsgLeaveGame:
		that.handleLeaveGame(c)
	case MsgGameAction:
		that.handleGameAction(ctx, c, &msg)
	default:
		log.Error("unknown message type", "type", msg.Type)
	}
}

func (that *Server) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// gameOf - returns the client's current game association.
func (that *Server) gameOf(c *client) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return c.gameID
}

// bindGame - associates the client with a game.
func (that *Server) bindGame(c *client, gameID, username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	c.gameID = gameID
	c.username = username
}

// unbindGame - clears the client's association and returns what it was.
func (that *Server) unbindGame(c *client) (gameID, username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	gameID, username = c.gameID, c.username
	c.gameID, c.username = "", ""

	return gameID, username
}

// disconnect - synthesizes a leave for a dropped connection, then forgets it.
func (that *Server) disconnect(c *client) {
	log := that.logger.With("method", "disconnect", "clientID", c.id)

	that.leaveCurrentGame(c)

	that.mu.Lock()
	delete(that.clients, c.id)
	that.mu.Unlock()

	log.Info("client disconnected")
}

// broadcast - sends a message to every client associated with the game code.
// Delivery is best-effort per recipient; one failed send never blocks the rest.
func (that *Server) broadcast(gameID string, msg Message) {
	log := that.logger.With("method", "broadcast", "gameID", gameID)

	that.mu.Lock()
	recipients := make([]*client, 0, len(that.clients))
	for _, c := range that.clients {
		if c.gameID == gameID {
			recipients = append(recipients, c)
		}
	}
	that.mu.Unlock()

	for _, c := range recipients {
		if err := c.send(msg); err != nil {
			log.Error("failed to send game update", "clientID", c.id, "error", err)
		}
	}
}

func (that *Server) sendError(c *client, message string) {
	if err := c.send(Message{
		Type:    MsgError,
		Payload: mustMarshal(errorPayload{Message: message}),
	}); err != nil {
		that.logger.Error("failed to send error response", "clientID", c.id, "error", err)
	}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
