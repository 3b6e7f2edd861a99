package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CandorLabs/InterviewKit/interview"
	"github.com/CandorLabs/InterviewKit/providers/mock"
	"github.com/CandorLabs/InterviewKit/questionbank"
	"github.com/CandorLabs/InterviewKit/session"
	"github.com/CandorLabs/InterviewKit/types"
)

func setupServer(t *testing.T, provider *mock.MockProvider) *websocket.Conn {
	t.Helper()

	factory := func(ctx context.Context, candidateID string) (*session.Session, error) {
		return session.New(ctx, session.Config{
			CandidateID: candidateID,
			Provider:    provider,
			Bank: questionbank.Bank{
				{Text: "What is a goroutine?", Difficulty: types.DifficultyBasic},
			},
			Counts:    questionbank.Counts{Easy: 1},
			Interview: interview.Config{MaxFollowUps: -1, Policy: interview.PolicyNone},
		})
	}

	srv := httptest.NewServer(NewServer(factory))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestServer_ConfirmFlow(t *testing.T) {
	provider := mock.NewMockProvider("mock")
	provider.Script("What is a goroutine?", "Thanks, that concludes the interview.")
	conn := setupServer(t, provider)

	resp := roundTrip(t, conn, Request{Method: MethodConfirm})
	assert.Equal(t, statusOK, resp.Status)
	assert.Equal(t, "What is a goroutine?", resp.Utterance)
	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, resp.Ended)

	resp = roundTrip(t, conn, Request{Method: MethodConfirm, Payload: "a lightweight thread"})
	assert.Equal(t, statusOK, resp.Status)
	assert.True(t, resp.Ended)
}

func TestServer_SkipAndRetry(t *testing.T) {
	provider := mock.NewMockProvider("mock")
	provider.Script("What is a goroutine?")
	conn := setupServer(t, provider)

	resp := roundTrip(t, conn, Request{Method: MethodConfirm})
	require.Equal(t, statusOK, resp.Status)

	resp = roundTrip(t, conn, Request{Method: MethodRetry})
	assert.Equal(t, statusOK, resp.Status)
	assert.NotEmpty(t, resp.Utterance)
	assert.False(t, resp.Ended)

	resp = roundTrip(t, conn, Request{Method: MethodSkip})
	assert.Equal(t, statusOK, resp.Status)
	assert.True(t, resp.Ended)
}

func TestServer_UnknownMethod(t *testing.T) {
	provider := mock.NewMockProvider("mock")
	conn := setupServer(t, provider)

	resp := roundTrip(t, conn, Request{Method: "pause"})
	assert.Equal(t, statusError, resp.Status)
	assert.Contains(t, resp.Error, "unknown method")
}

func TestServer_GenerationErrorFrame(t *testing.T) {
	provider := mock.NewMockProvider("mock")
	provider.FailWith(assert.AnError)
	conn := setupServer(t, provider)

	resp := roundTrip(t, conn, Request{Method: MethodConfirm})
	assert.Equal(t, statusError, resp.Status)
	assert.Equal(t, session.ErrGeneration.Error(), resp.Error)

	// The channel survives a failed turn; the next trigger still works.
	provider.FailWith(nil)
	provider.Script("recovered question")
	resp = roundTrip(t, conn, Request{Method: MethodConfirm})
	assert.Equal(t, statusOK, resp.Status)
	assert.Equal(t, "recovered question", resp.Utterance)
}

func TestServer_FactoryFailureRejectsConnection(t *testing.T) {
	factory := func(ctx context.Context, candidateID string) (*session.Session, error) {
		return nil, assert.AnError
	}
	srv := httptest.NewServer(NewServer(factory))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	var frame Response
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, statusError, frame.Status)
}

// activeSessions reads the sessions gauge; it must stay non-fatal because it
// is polled from Eventually's goroutine.
func activeSessions() float64 {
	families, err := prom.DefaultGatherer.Gather()
	if err != nil {
		return -1
	}
	for _, family := range families {
		if family.GetName() == "interviewkit_sessions_active" {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}

func TestServer_DisconnectReleasesSession(t *testing.T) {
	provider := mock.NewMockProvider("mock")
	provider.Script("What is a goroutine?")
	conn := setupServer(t, provider)

	resp := roundTrip(t, conn, Request{Method: MethodConfirm})
	require.Equal(t, statusOK, resp.Status)
	require.False(t, resp.Ended)
	after := activeSessions()

	// Dropping the connection mid-interview must release the session.
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return activeSessions() == after-1
	}, time.Second, 10*time.Millisecond)
}

func TestServer_NonWebSocketRequest(t *testing.T) {
	srv := httptest.NewServer(NewServer(func(ctx context.Context, _ string) (*session.Session, error) {
		t.Fatal("factory must not be called")
		return nil, nil
	}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
