// Package client exposes the node's RPC surface as one capability
// type, one method per call, independent of the underlying transport.
package client

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chainx-org/chainx-cli/internal/log"
	"github.com/chainx-org/chainx-cli/internal/rpcclient"
	"github.com/chainx-org/chainx-cli/pkg/metadata"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

// Client wraps a JSON-RPC transport with typed node methods.
type Client struct {
	t rpcclient.Transport
}

// New creates a client over an established transport.
func New(t rpcclient.Transport) *Client {
	return &Client{t: t}
}

// Dial connects to the endpoint and returns a client over the
// scheme-appropriate transport.
func Dial(endpoint string) (*Client, error) {
	t, err := rpcclient.Dial(endpoint)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.t.Close()
}

// FetchError wraps failures while retrieving data from the node:
// transport errors, malformed RPC envelopes, missing or mistyped
// result fields, invalid hex. It is never used for decode failures of
// successfully fetched bytes.
type FetchError struct {
	Method string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Method, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// raw performs a positional-parameter call returning the raw JSON
// result.
func (c *Client) raw(method string, params ...interface{}) (json.RawMessage, error) {
	log.RPC.Debug().Str("method", method).Msg("call")
	var out json.RawMessage
	if err := c.t.Call(method, params, &out); err != nil {
		return nil, &FetchError{Method: method, Err: err}
	}
	return out, nil
}

// FetchRawMetadata retrieves the runtime metadata blob: a single
// state_getMetadata call whose string result is a 0x-prefixed hex
// encoding of the SCALE bytes.
func (c *Client) FetchRawMetadata() ([]byte, error) {
	const method = "state_getMetadata"
	var result json.RawMessage
	if err := c.t.Call(method, nil, &result); err != nil {
		return nil, &FetchError{Method: method, Err: err}
	}

	var hexData string
	if err := json.Unmarshal(result, &hexData); err != nil {
		return nil, &FetchError{Method: method, Err: fmt.Errorf("result field should be a string: %w", err)}
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return nil, &FetchError{Method: method, Err: fmt.Errorf("invalid hex in result: %w", err)}
	}
	log.Meta.Debug().Int("bytes", len(raw)).Msg("fetched metadata blob")
	return raw, nil
}

// Metadata fetches and decodes the runtime metadata. Fetch and decode
// failures stay distinct: the former is a *FetchError, the latter a
// metadata decode error.
func (c *Client) Metadata() (*metadata.RuntimeMetadata, error) {
	raw, err := c.FetchRawMetadata()
	if err != nil {
		return nil, err
	}
	return metadata.Decode(raw)
}

// RuntimeVersion is the subset of state_getRuntimeVersion needed for
// signing and cache keys.
type RuntimeVersion struct {
	SpecName           string `json:"specName"`
	ImplName           string `json:"implName"`
	SpecVersion        uint32 `json:"specVersion"`
	ImplVersion        uint32 `json:"implVersion"`
	TransactionVersion uint32 `json:"transactionVersion"`
}

// GetRuntimeVersion queries the node's runtime version.
func (c *Client) GetRuntimeVersion() (*RuntimeVersion, error) {
	const method = "state_getRuntimeVersion"
	var rv RuntimeVersion
	if err := c.t.Call(method, nil, &rv); err != nil {
		return nil, &FetchError{Method: method, Err: err}
	}
	return &rv, nil
}

// GetStorage queries a raw storage value by 0x-prefixed key, at an
// optional block hash.
func (c *Client) GetStorage(key string, at *types.Hash) (json.RawMessage, error) {
	if at != nil {
		return c.raw("state_getStorage", key, at)
	}
	return c.raw("state_getStorage", key)
}

// SubmitExtrinsic submits a signed, SCALE-encoded extrinsic and
// returns the reported transaction hash.
func (c *Client) SubmitExtrinsic(encoded []byte) (types.Hash, error) {
	const method = "author_submitExtrinsic"
	var h types.Hash
	if err := c.t.Call(method, []interface{}{"0x" + hex.EncodeToString(encoded)}, &h); err != nil {
		return types.Hash{}, &FetchError{Method: method, Err: err}
	}
	return h, nil
}

// AccountNextIndex returns the next nonce for an account.
func (c *Client) AccountNextIndex(account types.AccountID) (uint64, error) {
	const method = "system_accountNextIndex"
	var nonce uint64
	if err := c.t.Call(method, []interface{}{account.String()}, &nonce); err != nil {
		return 0, &FetchError{Method: method, Err: err}
	}
	return nonce, nil
}
