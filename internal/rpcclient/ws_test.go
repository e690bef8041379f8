package rpcclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// wsEcho upgrades the connection and answers every request with a
// fixed result, optionally preceding it with an unrelated
// notification.
func wsEcho(t *testing.T, notifyFirst bool) http.Handler {
	upgrader := websocket.Upgrader{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			var req request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if notifyFirst {
				// Subscription-style message with a foreign id.
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0",
					"id":      9999,
					"result":  "noise",
				})
			}
			conn.WriteJSON(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  "pong:" + req.Method,
			})
		}
	})
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSClient_Call(t *testing.T) {
	srv := httptest.NewServer(wsEcho(t, false))
	defer srv.Close()

	c, err := DialWebSocket(wsURL(srv))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var result string
	if err := c.Call("system_chain", nil, &result); err != nil {
		t.Fatal(err)
	}
	if result != "pong:system_chain" {
		t.Errorf("result = %q", result)
	}
}

func TestWSClient_SkipsUnmatchedIDs(t *testing.T) {
	srv := httptest.NewServer(wsEcho(t, true))
	defer srv.Close()

	c, err := DialWebSocket(wsURL(srv))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var result string
	if err := c.Call("chain_getHeader", nil, &result); err != nil {
		t.Fatal(err)
	}
	if result != "pong:chain_getHeader" {
		t.Errorf("result = %q, notification not skipped", result)
	}
}

func TestDial_WebSocket(t *testing.T) {
	srv := httptest.NewServer(wsEcho(t, false))
	defer srv.Close()

	tr, err := Dial(wsURL(srv))
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()
	if _, ok := tr.(*WSClient); !ok {
		t.Errorf("ws endpoint produced %T", tr)
	}
}
