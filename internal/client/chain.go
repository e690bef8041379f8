package client

import (
	"encoding/json"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

// Chain and system RPC queries. All are parameter-forwarding calls;
// results come back as raw JSON for the CLI to pretty-print.

// GetHeader returns the header of a block, or of the latest block when
// hash is nil.
func (c *Client) GetHeader(hash *types.Hash) (json.RawMessage, error) {
	if hash != nil {
		return c.raw("chain_getHeader", hash)
	}
	return c.raw("chain_getHeader")
}

// GetFinalizedHead returns the hash of the last finalized block.
func (c *Client) GetFinalizedHead() (json.RawMessage, error) {
	return c.raw("chain_getFinalizedHead")
}

// GetBlockHash returns the hash of the block at the given height, or
// of the latest block when height is nil.
func (c *Client) GetBlockHash(height *uint64) (json.RawMessage, error) {
	if height != nil {
		return c.raw("chain_getBlockHash", height)
	}
	return c.raw("chain_getBlockHash")
}

// GenesisHash returns the hash of the genesis block.
func (c *Client) GenesisHash() (types.Hash, error) {
	const method = "chain_getBlockHash"
	var h types.Hash
	if err := c.t.Call(method, []interface{}{0}, &h); err != nil {
		return types.Hash{}, &FetchError{Method: method, Err: err}
	}
	return h, nil
}

// GetBlock returns header and body of a block, or of the latest block
// when hash is nil.
func (c *Client) GetBlock(hash *types.Hash) (json.RawMessage, error) {
	if hash != nil {
		return c.raw("chain_getBlock", hash)
	}
	return c.raw("chain_getBlock")
}

// GetBlockByHeight resolves a height to its hash and returns that
// block.
func (c *Client) GetBlockByHeight(height uint64) (json.RawMessage, error) {
	const method = "chain_getBlockHash"
	var h types.Hash
	if err := c.t.Call(method, []interface{}{height}, &h); err != nil {
		return nil, &FetchError{Method: method, Err: err}
	}
	return c.GetBlock(&h)
}

// SystemName returns the node's implementation name.
func (c *Client) SystemName() (json.RawMessage, error) {
	return c.raw("system_name")
}

// SystemVersion returns the node implementation's semver string.
func (c *Client) SystemVersion() (json.RawMessage, error) {
	return c.raw("system_version")
}

// SystemChain returns the chain's type identifier.
func (c *Client) SystemChain() (json.RawMessage, error) {
	return c.raw("system_chain")
}

// SystemProperties returns the chain-spec property object.
func (c *Client) SystemProperties() (json.RawMessage, error) {
	return c.raw("system_properties")
}

// SystemHealth returns the node's health status.
func (c *Client) SystemHealth() (json.RawMessage, error) {
	return c.raw("system_health")
}

// SystemPeers returns the currently connected peers.
func (c *Client) SystemPeers() (json.RawMessage, error) {
	return c.raw("system_peers")
}

// SystemNetworkState returns the current network state.
func (c *Client) SystemNetworkState() (json.RawMessage, error) {
	return c.raw("system_networkState")
}
