package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolkov/cardscreen/internal/model"
	"github.com/avolkov/cardscreen/internal/provider/static"
	"github.com/avolkov/cardscreen/internal/store"
)

var testCard = model.CardDetails{
	Number: "1234 5678 9012 3456",
	Holder: "J. APPLESEED",
	Expiry: "12/28",
	CVV:    "123",
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New(t.Context(), static.New(testCard, 0), nil)
	waitLoaded(t, st)
	srv := httptest.NewServer(New(st, nil).Routes())
	t.Cleanup(srv.Close)
	return srv, st
}

func waitLoaded(t *testing.T, st *store.Store) {
	t.Helper()
	ch, cancel := st.Subscribe()
	defer cancel()
	for {
		select {
		case snap := <-ch:
			if !snap.IsLoading {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("store did not finish loading")
		}
	}
}

func decodeState(t *testing.T, resp *http.Response) model.DisplayState {
	t.Helper()
	defer resp.Body.Close()
	var st model.DisplayState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func TestHandleState(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/state")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st := decodeState(t, resp)
	require.Equal(t, "**** **** **** 3456", st.CardNumber)
	require.Equal(t, model.ButtonReveal, st.ButtonText)
	require.False(t, st.IsRevealed)
}

func TestHandleIntent_ToggleVisibility(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/intent", "application/json",
		strings.NewReader(`{"type":"toggle_visibility"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st := decodeState(t, resp)
	require.True(t, st.IsRevealed)
	require.Equal(t, "1234 5678 9012 3456", st.CardNumber)
	require.Equal(t, model.ButtonHide, st.ButtonText)
}

func TestHandleIntent_UnknownType(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/intent", "application/json",
		strings.NewReader(`{"type":"self_destruct"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleIntent_BadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/intent", "application/json",
		strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocket_PushesSnapshots(t *testing.T) {
	srv, st := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// current snapshot is replayed on connect
	var snap model.DisplayState
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, "**** **** **** 3456", snap.CardNumber)

	// every transition is pushed in order
	st.Dispatch(model.ToggleVisibility{})
	require.NoError(t, conn.ReadJSON(&snap))
	require.True(t, snap.IsRevealed)
	require.Equal(t, "1234 5678 9012 3456", snap.CardNumber)

	st.Dispatch(model.ToggleLock{})
	require.NoError(t, conn.ReadJSON(&snap))
	require.True(t, snap.IsLocked)
	require.False(t, snap.IsRevealed)
	require.Equal(t, "**** **** **** 3456", snap.CardNumber)
}

func TestLoggingMiddleware_KeepsHijacker(t *testing.T) {
	// the websocket upgrade needs http.Hijacker from the wrapped writer
	var hijackable bool
	h := Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, hijackable = w.(http.Hijacker)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil))
	require.True(t, hijackable)
}

func TestRecoverMiddleware(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseIntent_ClosedSet(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]model.Intent{
		"load":              model.LoadCardDetails{},
		"toggle_visibility": model.ToggleVisibility{},
		"toggle_lock":       model.ToggleLock{},
	} {
		in, err := parseIntent(name)
		require.NoError(t, err)
		require.Equal(t, want, in)
	}
	_, err := parseIntent("reveal")
	require.Error(t, err)
}
