package rpcclient

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chainx-org/chainx-cli/internal/log"
)

// WSClient is a JSON-RPC 2.0 client over a persistent WebSocket
// session. Calls are serialized: one request in flight at a time,
// matched to its response by id.
type WSClient struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	nextID int
}

// DialWebSocket opens a WebSocket session to the given ws:// or wss://
// endpoint.
func DialWebSocket(endpoint string) (*WSClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket %s: %w", endpoint, err)
	}
	log.RPC.Debug().Str("endpoint", endpoint).Msg("websocket session opened")
	return &WSClient{conn: conn, nextID: 1}, nil
}

// Call invokes a JSON-RPC method over the socket and unmarshals the
// result into the provided pointer. Responses with unknown ids
// (subscription notifications, stale replies) are skipped.
func (c *WSClient) Call(method string, params, result interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      id,
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		var rpcResp response
		if err := json.Unmarshal(data, &rpcResp); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if rpcResp.ID != id {
			log.RPC.Debug().Int("id", rpcResp.ID).Msg("skipping unmatched message")
			continue
		}

		if rpcResp.Error != nil {
			return &RPCError{
				Code:    rpcResp.Error.Code,
				Message: rpcResp.Error.Message,
			}
		}
		if result != nil && rpcResp.Result != nil {
			if err := json.Unmarshal(rpcResp.Result, result); err != nil {
				return fmt.Errorf("decode result: %w", err)
			}
		}
		return nil
	}
}

// Close closes the WebSocket session.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
