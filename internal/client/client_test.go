package client

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chainx-org/chainx-cli/internal/rpcclient"
	"github.com/chainx-org/chainx-cli/pkg/metadata"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

func dd[T any](v T) metadata.DecodeDifferent[T] {
	return metadata.DecodeDifferent[T]{Decoded: &v}
}

func testMetadataBlob() []byte {
	m := &metadata.RuntimeMetadata{V12: &metadata.MetadataV12{
		Modules: dd([]metadata.ModuleMetadataV12{
			{
				Name:      dd("System"),
				Constants: dd([]metadata.ModuleConstantMetadata{}),
				Errors:    dd([]metadata.ErrorMetadata{}),
				Index:     0,
			},
		}),
		Extrinsic: metadata.ExtrinsicMetadataV12{Version: 4},
	}}
	return m.Encode()
}

// nodeStub answers the handful of RPC methods the client exercises.
type nodeStub struct {
	t        *testing.T
	metadata string
	lastReq  map[string]interface{}
}

func (n *nodeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req map[string]interface{}
	if err := json.Unmarshal(body, &req); err != nil {
		n.t.Fatalf("decode request: %v", err)
	}
	n.lastReq = req

	reply := func(result interface{}) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req["id"],
			"result":  result,
		})
	}
	switch req["method"] {
	case "state_getMetadata":
		reply(n.metadata)
	case "chain_getBlockHash":
		reply("0x" + strings.Repeat("ab", 32))
	case "state_getRuntimeVersion":
		reply(map[string]interface{}{"specName": "chainx", "specVersion": 25, "transactionVersion": 3})
	case "system_accountNextIndex":
		reply(7)
	case "author_submitExtrinsic":
		reply("0x" + strings.Repeat("cd", 32))
	default:
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req["id"],
			"error":   map[string]interface{}{"code": -32601, "message": "Method not found"},
		})
	}
}

func newTestClient(t *testing.T, stub *nodeStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return New(rpcclient.New(srv.URL))
}

func TestMetadata(t *testing.T) {
	blob := testMetadataBlob()
	stub := &nodeStub{t: t, metadata: "0x" + hex.EncodeToString(blob)}
	c := newTestClient(t, stub)

	m, err := c.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if m.Version() != 12 {
		t.Errorf("Version() = %d, want 12", m.Version())
	}
	if _, err := metadata.Resolve(m, "System"); err != nil {
		t.Errorf("resolve System: %v", err)
	}
}

func TestFetchRawMetadata_BadHex(t *testing.T) {
	stub := &nodeStub{t: t, metadata: "0xzznothex"}
	c := newTestClient(t, stub)

	_, err := c.FetchRawMetadata()
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	if fe.Method != "state_getMetadata" {
		t.Errorf("FetchError.Method = %q", fe.Method)
	}
}

func TestFetchError_WrapsRPCError(t *testing.T) {
	stub := &nodeStub{t: t}
	c := newTestClient(t, stub)

	_, err := c.raw("no_such_method")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	var rpcErr *rpcclient.RPCError
	if !errors.As(err, &rpcErr) {
		t.Errorf("FetchError does not unwrap to RPCError: %v", err)
	}
}

func TestMetadata_DecodeErrorIsNotFetchError(t *testing.T) {
	// A well-formed transport answer with a garbage payload must
	// surface as a decode error, not a fetch error.
	stub := &nodeStub{t: t, metadata: "0x00112233445566"}
	c := newTestClient(t, stub)

	_, err := c.Metadata()
	if err == nil {
		t.Fatal("decoded garbage metadata")
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		t.Errorf("decode failure reported as FetchError: %v", err)
	}
}

func TestGenesisHash(t *testing.T) {
	stub := &nodeStub{t: t}
	c := newTestClient(t, stub)

	hash, err := c.GenesisHash()
	if err != nil {
		t.Fatal(err)
	}
	if hash.String() != "0x"+strings.Repeat("ab", 32) {
		t.Errorf("genesis = %s", hash)
	}
	// Genesis is the hash of block 0; the height must be on the wire.
	params, _ := json.Marshal(stub.lastReq["params"])
	if string(params) != "[0]" {
		t.Errorf("params = %s", params)
	}
}

func TestSubmitExtrinsic(t *testing.T) {
	stub := &nodeStub{t: t}
	c := newTestClient(t, stub)

	hash, err := c.SubmitExtrinsic([]byte{0x04, 0x05})
	if err != nil {
		t.Fatal(err)
	}
	if hash.IsZero() {
		t.Error("zero extrinsic hash")
	}
	params, _ := json.Marshal(stub.lastReq["params"])
	if string(params) != `["0x0405"]` {
		t.Errorf("params = %s", params)
	}
}

func TestAccountNextIndex(t *testing.T) {
	stub := &nodeStub{t: t}
	c := newTestClient(t, stub)

	nonce, err := c.AccountNextIndex(types.AccountID{1})
	if err != nil {
		t.Fatal(err)
	}
	if nonce != 7 {
		t.Errorf("nonce = %d, want 7", nonce)
	}
}

func TestRuntimeVersion(t *testing.T) {
	stub := &nodeStub{t: t}
	c := newTestClient(t, stub)

	rv, err := c.GetRuntimeVersion()
	if err != nil {
		t.Fatal(err)
	}
	if rv.SpecName != "chainx" || rv.SpecVersion != 25 || rv.TransactionVersion != 3 {
		t.Errorf("runtime version = %+v", rv)
	}
}
