package rpcclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// rpcHandler answers JSON-RPC requests from a method table and records
// what it saw.
type rpcHandler struct {
	t        *testing.T
	results  map[string]interface{}
	requests []request
}

func (h *rpcHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.t.Fatalf("read request: %v", err)
	}
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		h.t.Fatalf("decode request: %v", err)
	}
	h.requests = append(h.requests, req)

	if req.JSONRPC != "2.0" {
		h.t.Errorf("jsonrpc = %q, want 2.0", req.JSONRPC)
	}

	result, ok := h.results[req.Method]
	if !ok {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32601, "message": "Method not found"},
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result":  result,
	})
}

func TestClient_Call(t *testing.T) {
	h := &rpcHandler{t: t, results: map[string]interface{}{
		"system_chain": "ChainX",
	}}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := New(srv.URL)
	var chain string
	if err := c.Call("system_chain", nil, &chain); err != nil {
		t.Fatal(err)
	}
	if chain != "ChainX" {
		t.Errorf("result = %q", chain)
	}
}

func TestClient_CallError(t *testing.T) {
	h := &rpcHandler{t: t, results: map[string]interface{}{}}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := New(srv.URL)
	err := c.Call("no_such_method", nil, nil)
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("err = %v, want RPCError", err)
	}
	if rpcErr.Code != -32601 {
		t.Errorf("code = %d, want -32601", rpcErr.Code)
	}
}

func TestClient_IDsIncrement(t *testing.T) {
	h := &rpcHandler{t: t, results: map[string]interface{}{
		"system_name": "chainx-node",
	}}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := New(srv.URL)
	for i := 0; i < 3; i++ {
		if err := c.Call("system_name", nil, nil); err != nil {
			t.Fatal(err)
		}
	}
	if len(h.requests) != 3 {
		t.Fatalf("server saw %d requests", len(h.requests))
	}
	for i := 1; i < len(h.requests); i++ {
		if h.requests[i].ID <= h.requests[i-1].ID {
			t.Errorf("request ids not increasing: %d then %d", h.requests[i-1].ID, h.requests[i].ID)
		}
	}
}

func TestClient_Params(t *testing.T) {
	h := &rpcHandler{t: t, results: map[string]interface{}{
		"chain_getBlockHash": "0xabcd",
	}}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Call("chain_getBlockHash", []interface{}{uint64(42)}, nil); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(h.requests[0].Params)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[42]" {
		t.Errorf("params = %s", raw)
	}
}

func TestDial_SchemeSelection(t *testing.T) {
	tr, err := Dial("http://127.0.0.1:8087")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*Client); !ok {
		t.Errorf("http endpoint produced %T", tr)
	}
	tr.Close()

	if _, err := Dial("ftp://127.0.0.1"); err == nil {
		t.Error("unsupported scheme accepted")
	}
	if _, err := Dial("://bad"); err == nil {
		t.Error("unparseable endpoint accepted")
	}
}
