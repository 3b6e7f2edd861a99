// Package transport exposes interview sessions over WebSocket. Each
// connection carries one interview: clients send trigger frames and receive
// the asker's utterances back as acknowledgment frames.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CandorLabs/InterviewKit/interview"
	"github.com/CandorLabs/InterviewKit/logger"
	"github.com/CandorLabs/InterviewKit/session"
)

// Default connection constants.
const (
	DefaultWriteWait      = 10 * time.Second
	DefaultMaxMessageSize = 1 * 1024 * 1024 // 1MB
)

// Trigger methods accepted on the wire.
const (
	MethodConfirm = "confirm"
	MethodSkip    = "skip"
	MethodRetry   = "retry"
)

// Request is one trigger frame from the client. Payload carries the
// normalized answer for confirm; skip and retry ignore it.
type Request struct {
	Method  string `json:"method"`
	Payload string `json:"payload,omitempty"`
}

// Response acknowledges one trigger. Utterance is the asker's output for
// turns that generate one.
type Response struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Utterance string `json:"utterance,omitempty"`
	Error     string `json:"error,omitempty"`
	Ended     bool   `json:"ended"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)

// SessionFactory opens a fresh interview session for a new connection. The
// candidate ID comes from the request's "candidate" query parameter.
type SessionFactory func(ctx context.Context, candidateID string) (*session.Session, error)

// Server upgrades HTTP requests to WebSocket interview channels.
type Server struct {
	newSession     SessionFactory
	upgrader       websocket.Upgrader
	writeWait      time.Duration
	maxMessageSize int64
}

// Option configures a Server.
type Option func(*Server)

// WithWriteWait sets the write deadline for each outgoing frame.
func WithWriteWait(d time.Duration) Option {
	return func(s *Server) { s.writeWait = d }
}

// WithMaxMessageSize sets the read limit for incoming frames.
func WithMaxMessageSize(n int64) Option {
	return func(s *Server) { s.maxMessageSize = n }
}

// NewServer creates a Server that opens one session per connection.
func NewServer(factory SessionFactory, opts ...Option) *Server {
	s := &Server{
		newSession:     factory,
		writeWait:      DefaultWriteWait,
		maxMessageSize: DefaultMaxMessageSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(s.maxMessageSize)

	candidateID := r.URL.Query().Get("candidate")
	sess, err := s.newSession(r.Context(), candidateID)
	if err != nil {
		logger.Error("session open failed", "candidate", candidateID, "error", err)
		s.writeFrame(conn, Response{Status: statusError, Error: "failed to open session"})
		_ = conn.Close()
		return
	}

	logger.Info("interview channel opened", "session", sess.ID(), "remote", r.RemoteAddr)
	s.serve(r.Context(), conn, sess)
}

// serve runs the read loop until the client disconnects. Triggers are
// dispatched and acknowledged strictly in order, one at a time.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, sess *session.Session) {
	defer func() {
		sess.Close()
		_ = conn.Close()
		logger.Info("interview channel closed", "session", sess.ID())
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", "session", sess.ID(), "error", err)
			}
			return
		}

		resp := s.dispatch(ctx, sess, req)
		if err := s.writeFrame(conn, resp); err != nil {
			logger.Warn("websocket write failed", "session", sess.ID(), "error", err)
			return
		}
	}
}

// dispatch maps one trigger frame onto the session's handlers.
func (s *Server) dispatch(ctx context.Context, sess *session.Session, req Request) Response {
	var (
		utterance string
		err       error
	)
	switch req.Method {
	case MethodConfirm:
		payload := req.Payload
		if payload == "" {
			payload = session.FirstRequest
		}
		utterance, err = sess.Confirm(ctx, payload)
	case MethodSkip:
		utterance, err = sess.Skip(ctx)
	case MethodRetry:
		utterance, err = sess.Retry(ctx)
	default:
		err = fmt.Errorf("unknown method %q", req.Method)
	}

	resp := Response{
		SessionID: sess.ID(),
		Utterance: utterance,
		Ended:     sess.State().Phase() == interview.PhaseEnded,
	}
	if err != nil {
		resp.Status = statusError
		resp.Error = errorMessage(err)
	} else {
		resp.Status = statusOK
	}
	return resp
}

func (s *Server) writeFrame(conn *websocket.Conn, resp Response) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	return conn.WriteJSON(resp)
}

// errorMessage keeps provider internals off the wire while preserving the
// coordination errors clients act on.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrRoleConflict):
		return session.ErrRoleConflict.Error()
	case errors.Is(err, session.ErrGeneration):
		return session.ErrGeneration.Error()
	default:
		return err.Error()
	}
}
