package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/studroom/studroom/internal/game"
	"github.com/studroom/studroom/internal/room"
)

// Server is the WebSocket gateway in front of the table actors.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc

	registry *room.Registry
	identity IdentityResolver
	httpSrv  *http.Server
}

// NewServer builds the gateway and one actor per configured table.
func NewServer(cfg *Config, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	registry := room.NewRegistry()
	balances := room.NewMemoryBalances(cfg.Server.DefaultBalance)
	opts := room.Options{
		ActTimeout:     time.Duration(cfg.Server.ActTimeoutSeconds) * time.Second,
		RevealWait:     time.Duration(cfg.Server.RevealWaitSeconds) * time.Second,
		RetainedEvents: cfg.Server.RetainedEventLimit,
	}
	for _, tc := range cfg.Tables {
		table := game.NewTable(tc.Name, tc.Name, game.GameType(tc.Game), tc.Mixed, tc.Stakes(), tc.BuyInMin, tc.BuyInMax)
		registry.Add(table, balances, logger, opts)
	}

	return &Server{
		addr: cfg.ListenAddress(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		registry:    registry,
		identity:    NewNameIdentity(),
	}
}

// Registry exposes the table actors, mainly for tests and tooling.
func (s *Server) Registry() *room.Registry {
	return s.registry
}

// Start runs the gateway until Stop is called or the listener fails.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}
	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts down the listener, every connection, and every table actor.
func (s *Server) Stop() error {
	s.cancel()

	if s.httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.registry.Close()
	return nil
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Detaching from the actor marks any held seat
				// disconnected so the auto-action timer covers it.
				if actor := conn.currentActor(); actor != nil {
					actor.Unsubscribe(conn)
				}
				_ = conn.Close()
			}
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
