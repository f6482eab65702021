// Package server exposes matches to browsers: a websocket per session carrying JSON envelopes, plus a few HTTP
// endpoints to inspect the directory and scrape metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/prestrafe/spaceteam/directory"
	"gitlab.com/prestrafe/spaceteam/labels"
	"gitlab.com/prestrafe/spaceteam/match"
)

// Defines the public API of the game server. The server accepts websocket sessions, routes their events to the matches
// they play in and relays everything the matches emit back to them.
type Server interface {
	// Starts the server in the current goroutine and blocks until an error occurs or the server is stopped.
	Start() error
	// Stops the server, disposing every match and closing every session.
	Stop() error
	// Runs the server until ctx is cancelled, then stops it.
	Run(ctx context.Context) error
}

type server struct {
	addr       string
	port       int
	settings   match.Settings
	words      *labels.Words
	filter     OriginFilter
	logger     *zap.Logger
	hub        *hub
	directory  directory.Directory
	router     *mux.Router
	httpServer *http.Server
	upgrader   *websocket.Upgrader
}

// Creates a new game server, listening on a given address and port. Every match it creates uses settings and draws its
// labels from words. The filter decides which page origins may open a session.
func New(addr string, port int, settings match.Settings, words *labels.Words, filter OriginFilter,
	logger *zap.Logger) Server {
	return newServer(addr, port, settings, words, filter, logger)
}

func newServer(addr string, port int, settings match.Settings, words *labels.Words, filter OriginFilter,
	logger *zap.Logger) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if words == nil {
		words = labels.Default()
	}
	if filter == nil {
		filter = &ToggleOriginFilter{Value: true}
	}
	logger = logger.Named("server")

	s := &server{
		addr:      addr,
		port:      port,
		settings:  settings,
		words:     words,
		filter:    filter,
		logger:    logger,
		hub:       newHub(logger),
		directory: directory.New(logger),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.upgrader.CheckOrigin = func(request *http.Request) bool {
		return s.filter.Accept(request.Header.Get("Origin"))
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", addr, port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *server) routes() *mux.Router {
	router := mux.NewRouter()

	router.Path("/websocket").Methods("GET").HandlerFunc(s.handleWebsocket)
	router.Path("/matches").Methods("GET").HandlerFunc(s.handleMatches)
	router.Path("/matches/{id}").Methods("GET").HandlerFunc(s.handleMatch)
	router.Path("/debug/matches").Methods("GET").HandlerFunc(s.handleAllMatches)
	router.Path("/metrics").Methods("GET").Handler(promhttp.Handler())

	router.NotFoundHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		s.logger.Debug("Unmatched request", zap.String("method", request.Method), zap.Stringer("url", request.URL))
		writer.WriteHeader(http.StatusNotFound)
	})
	return router
}

func (s *server) Start() error {
	s.logger.Info("Starting game server", zap.String("addr", s.addr), zap.Int("port", s.port))
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) Stop() error {
	s.logger.Info("Stopping game server", zap.String("addr", s.addr), zap.Int("port", s.port))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("Disposing matches", zap.Int("matches", s.directory.Len()))
	s.directory.Close()
	s.hub.closeAll()
	return err
}

func (s *server) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(s.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		return s.Stop()
	})

	return group.Wait()
}

func (s *server) handleMatches(writer http.ResponseWriter, request *http.Request) {
	s.writeJSON(writer, request, s.directory.Public())
}

// handleAllMatches lists private and running matches too.
func (s *server) handleAllMatches(writer http.ResponseWriter, request *http.Request) {
	s.writeJSON(writer, request, s.directory.All())
}

func (s *server) handleMatch(writer http.ResponseWriter, request *http.Request) {
	id := mux.Vars(request)["id"]

	m, present := s.directory.Get(id)
	if !present {
		s.logger.Debug("Unknown match read", zap.String("remote", request.RemoteAddr), zap.String("match", id))
		writer.WriteHeader(http.StatusNotFound)
		return
	}
	s.writeJSON(writer, request, m.GameInfo())
}

func (s *server) writeJSON(writer http.ResponseWriter, request *http.Request, payload interface{}) {
	response, jsonError := json.Marshal(payload)
	if jsonError != nil {
		s.logger.Error("Could not serialize response", zap.String("remote", request.RemoteAddr), zap.Error(jsonError))
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)

	if _, ioError := writer.Write(response); ioError != nil {
		s.logger.Warn("Could not write response", zap.String("remote", request.RemoteAddr), zap.Error(ioError))
	}
}

func (s *server) handleWebsocket(writer http.ResponseWriter, request *http.Request) {
	conn, upgradeError := s.upgrader.Upgrade(writer, request, nil)
	if upgradeError != nil {
		s.logger.Warn("Could not upgrade websocket connection",
			zap.String("remote", request.RemoteAddr),
			zap.Error(upgradeError))
		return
	}

	sess := newSession(uuid.NewString(), conn, s.logger)
	s.hub.add(sess)
	sess.logger.Info("Session connected", zap.String("remote", request.RemoteAddr))

	go sess.writeLoop()
	sess.readLoop(s.dispatch)

	s.disconnect(sess)
}

// disconnect releases everything a session holds once its connection is gone.
func (s *server) disconnect(sess *session) {
	if m := sess.current(); m != nil {
		if err := m.Leave(sess); err != nil && !errors.Is(err, match.ErrNotInMatch) {
			sess.logger.Debug("Could not leave match on disconnect", zap.Error(err))
		}
	}
	s.hub.remove(sess)
	sess.logger.Info("Session disconnected")
}
