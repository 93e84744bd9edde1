package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"homecall/models"
	"homecall/realtime"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type pushServer struct {
	srv *httptest.Server

	mu    sync.Mutex
	conns []*websocket.Conn
	query map[string]string
}

// newPushServer stands in for the booking service's socket endpoint.
func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	ps.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/socket" {
			http.NotFound(w, r)
			return
		}
		ps.mu.Lock()
		ps.query = map[string]string{
			"token":    r.URL.Query().Get("token"),
			"role":     r.URL.Query().Get("role"),
			"deviceId": r.URL.Query().Get("deviceId"),
		}
		ps.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.mu.Lock()
		ps.conns = append(ps.conns, conn)
		ps.mu.Unlock()
	}))
	t.Cleanup(ps.srv.Close)
	return ps
}

func (ps *pushServer) send(t *testing.T, event string, data interface{}) {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	frame := map[string]json.RawMessage{"event": json.RawMessage(`"` + event + `"`), "data": payload}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	require.NotEmpty(t, ps.conns)
	require.NoError(t, ps.conns[len(ps.conns)-1].WriteJSON(frame))
}

func (ps *pushServer) queryParam(key string) string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.query[key]
}

func TestDialPassesConnectionCredentials(t *testing.T) {
	ps := newPushServer(t)

	ch, err := realtime.Dial(context.Background(), ps.srv.URL, models.RoleOwner, "tok-123", "dev-9")
	require.NoError(t, err)
	defer ch.Close()

	require.Eventually(t, func() bool {
		return ps.queryParam("token") == "tok-123"
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, "owner", ps.queryParam("role"))
	require.Equal(t, "dev-9", ps.queryParam("deviceId"))
}

func TestEventsDispatchInSendOrder(t *testing.T) {
	ps := newPushServer(t)

	ch, err := realtime.Dial(context.Background(), ps.srv.URL, models.RoleOwner, "tok", "")
	require.NoError(t, err)
	defer ch.Close()

	var mu sync.Mutex
	var got []string
	ch.On(realtime.EventBookingUpdated, func(data json.RawMessage) {
		var b models.Booking
		require.NoError(t, json.Unmarshal(data, &b))
		mu.Lock()
		got = append(got, b.ID)
		mu.Unlock()
	})

	for _, id := range []string{"a", "b", "c"} {
		ps.send(t, realtime.EventBookingUpdated, models.Booking{ID: id})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestNoHandlerFiresAfterClose(t *testing.T) {
	ps := newPushServer(t)

	ch, err := realtime.Dial(context.Background(), ps.srv.URL, models.RoleProvider, "tok", "")
	require.NoError(t, err)

	var fired int32
	ch.On(realtime.EventProviderUpdated, func(json.RawMessage) { atomic.AddInt32(&fired, 1) })

	ps.send(t, realtime.EventProviderUpdated, nil)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, ch.Close())

	// Whatever the server sends now must not reach a handler.
	ps.mu.Lock()
	conn := ps.conns[len(ps.conns)-1]
	ps.mu.Unlock()
	_ = conn.WriteJSON(map[string]string{"event": realtime.EventProviderUpdated})
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// Closing twice is harmless.
	require.NoError(t, ch.Close())
}

func TestMalformedFramesAreDropped(t *testing.T) {
	ps := newPushServer(t)

	ch, err := realtime.Dial(context.Background(), ps.srv.URL, models.RoleOwner, "tok", "")
	require.NoError(t, err)
	defer ch.Close()

	var fired int32
	ch.On(realtime.EventNewBooking, func(json.RawMessage) { atomic.AddInt32(&fired, 1) })

	ps.mu.Lock()
	conn := ps.conns[len(ps.conns)-1]
	ps.mu.Unlock()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	ps.send(t, realtime.EventNewBooking, models.Booking{ID: "1"})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 10*time.Millisecond)
}
