package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/recipebot/internal/dialog"
)

// maxBodyBytes bounds a single request envelope.
const maxBodyBytes = 64 << 10

// TextBadRequest is returned for an empty or malformed envelope.
const TextBadRequest = "Произошла ошибка. Пустой запрос."

// TurnHandler answers one turn. *dialog.Dispatcher implements it.
type TurnHandler interface {
	Handle(ctx context.Context, turn dialog.Turn) dialog.Reply
}

// HealthFunc reports whether the backing store is usable.
type HealthFunc func(ctx context.Context) error

// Server translates HTTP envelopes to turns.
type Server struct {
	turns  TurnHandler
	health HealthFunc
	logger *slog.Logger
}

// NewServer creates a Server. health may be nil; logger may be nil.
func NewServer(turns TurnHandler, health HealthFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{turns: turns, health: health, logger: logger}
}

// Router returns the HTTP routes:
//   - POST /post    turn envelope in, reply envelope out
//   - GET  /healthz 200 when the store answers, 503 otherwise
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/post", s.handleTurn)
	r.Get("/healthz", s.handleHealth)

	return r
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	req, sess, err := decodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.logger.WarnContext(ctx, "rejecting envelope", "request_id", reqID, "error", err)
		s.writeJSON(ctx, w, http.StatusBadRequest, Response{
			Version:  DefaultVersion,
			Response: ResponseBody{Text: TextBadRequest},
		})
		return
	}

	turn := toTurn(req, sess)
	s.logger.DebugContext(ctx, "incoming turn",
		"request_id", reqID,
		"user_id", turn.UserID,
		"new_session", turn.NewSession,
		"utterance", turn.Utterance,
	)

	reply := s.turns.Handle(ctx, turn)

	s.logger.DebugContext(ctx, "outgoing reply", "request_id", reqID, "text", reply.Text)
	s.writeJSON(ctx, w, http.StatusOK, fromReply(req, reply))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.ErrorContext(ctx, "write response", "error", err)
	}
}

var errEmptyEnvelope = errors.New("empty envelope")

// decodeRequest parses the envelope. A body that is empty, not JSON, or
// lacks a session object is rejected.
func decodeRequest(body io.Reader) (Request, Session, error) {
	var req Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return Request{}, Session{}, errEmptyEnvelope
		}
		return Request{}, Session{}, fmt.Errorf("decode envelope: %w", err)
	}

	if len(req.Session) == 0 || string(req.Session) == "null" {
		return Request{}, Session{}, fmt.Errorf("decode envelope: missing session")
	}

	var sess Session
	if err := json.Unmarshal(req.Session, &sess); err != nil {
		return Request{}, Session{}, fmt.Errorf("decode session: %w", err)
	}

	return req, sess, nil
}
