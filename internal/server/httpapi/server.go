// Package httpapi exposes the card display store to remote observers:
// intents are posted by name, the current snapshot is readable, and a
// websocket endpoint pushes every published snapshot.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/avolkov/cardscreen/internal/errs"
	"github.com/avolkov/cardscreen/internal/model"
	"github.com/avolkov/cardscreen/internal/store"
)

// Server wires the display store into HTTP handlers.
type Server struct {
	store    *store.Store
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// New constructs a server around the given store.
func New(st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store: st,
		log:   log,
		upgrader: websocket.Upgrader{
			// local display service; the widget page may be served from any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the router with logging and panic recovery applied.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(Recover(s.log), Logging(s.log))
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/intent", s.handleIntent).Methods(http.MethodPost)
	api.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	return r
}

type intentRequest struct {
	Type string `json:"type"`
}

// parseIntent maps a wire name onto the closed intent set.
func parseIntent(name string) (model.Intent, error) {
	switch name {
	case "load":
		return model.LoadCardDetails{}, nil
	case "toggle_visibility":
		return model.ToggleVisibility{}, nil
	case "toggle_lock":
		return model.ToggleLock{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownIntent, name)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	in, err := parseIntent(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.store.Dispatch(in)
	s.writeJSON(w, http.StatusOK, s.store.State())
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}
