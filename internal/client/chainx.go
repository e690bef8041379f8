package client

import (
	"encoding/json"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

// ChainX-specific RPC queries: assets, bridge withdrawals/deposits,
// the spot dex, staking and trustees. Every call takes an optional
// trailing block hash; nil means the latest block.

// withAt appends the optional block hash to a positional param list.
func withAt(params []interface{}, at *types.Hash) []interface{} {
	if at != nil {
		return append(params, at)
	}
	return params
}

// GetAssets lists all chain assets, paginated.
func (c *Client) GetAssets(index, size uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getAssets", withAt([]interface{}{index, size}, at)...)
}

// GetAssetsByAccount lists one account's asset balances, paginated.
func (c *Client) GetAssetsByAccount(who types.AccountID, index, size uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getAssetsByAccount", withAt([]interface{}{who.String(), index, size}, at)...)
}

// VerifyAddressValidity checks a cross-chain address and memo for a
// token.
func (c *Client) VerifyAddressValidity(token, addr, memo string, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_verifyAddressValidity", withAt([]interface{}{token, addr, memo}, at)...)
}

// GetWithdrawalLimitByToken returns the withdrawal bounds for a token.
func (c *Client) GetWithdrawalLimitByToken(token string, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getWithdrawalLimitByToken", withAt([]interface{}{token}, at)...)
}

// GetDepositLimitByToken returns the deposit bounds for a token.
func (c *Client) GetDepositLimitByToken(token string, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getDepositLimitByToken", withAt([]interface{}{token}, at)...)
}

// GetWithdrawalList lists pending withdrawals on a bridged chain,
// paginated.
func (c *Client) GetWithdrawalList(chain string, index, size uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getWithdrawalList", withAt([]interface{}{chain, index, size}, at)...)
}

// GetDepositList lists pending deposits on a bridged chain, paginated.
func (c *Client) GetDepositList(chain string, index, size uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getDepositList", withAt([]interface{}{chain, index, size}, at)...)
}

// GetNextRenominate returns the next block an account may re-nominate
// at.
func (c *Client) GetNextRenominate(who types.AccountID, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getNextRenominateByAccount", withAt([]interface{}{who.String()}, at)...)
}

// GetNominationRecords returns an account's staking nominations.
func (c *Client) GetNominationRecords(who types.AccountID, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getNominationRecords", withAt([]interface{}{who.String()}, at)...)
}

// GetPseduNominationRecords returns an account's pseudo-nominations
// (cross-chain mining).
func (c *Client) GetPseduNominationRecords(who types.AccountID, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getPseduNominationRecords", withAt([]interface{}{who.String()}, at)...)
}

// GetIntentionByAccount returns one validator intention.
func (c *Client) GetIntentionByAccount(who types.AccountID, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getIntentionByAccount", withAt([]interface{}{who.String()}, at)...)
}

// GetIntentions lists all validator intentions.
func (c *Client) GetIntentions(at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getIntentions", withAt(nil, at)...)
}

// GetPseduIntentions lists all pseudo-intentions.
func (c *Client) GetPseduIntentions(at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getPseduIntentions", withAt(nil, at)...)
}

// GetTradingPairs lists the spot dex trading pairs.
func (c *Client) GetTradingPairs(at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getTradingPairs", withAt(nil, at)...)
}

// GetQuotations returns the order book for a trading pair.
func (c *Client) GetQuotations(pairID, pieces uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getQuotations", withAt([]interface{}{pairID, pieces}, at)...)
}

// GetOrders lists an account's open orders, paginated.
func (c *Client) GetOrders(who types.AccountID, index, size uint32, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getOrders", withAt([]interface{}{who.String(), index, size}, at)...)
}

// GetAddressByAccount returns an account's binding address on a
// bridged chain.
func (c *Client) GetAddressByAccount(who types.AccountID, chain string, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getAddressByAccount", withAt([]interface{}{who.String(), chain}, at)...)
}

// GetTrusteeSessionInfo returns a trustee session; era nil means the
// latest session.
func (c *Client) GetTrusteeSessionInfo(chain string, era *uint32, at *types.Hash) (json.RawMessage, error) {
	params := []interface{}{chain}
	if era != nil {
		params = append(params, *era)
	}
	return c.raw("chainx_getTrusteeSessionInfo", withAt(params, at)...)
}

// GetTrusteeInfoByAccount returns an account's trustee properties.
func (c *Client) GetTrusteeInfoByAccount(who types.AccountID, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getTrusteeInfoByAccount", withAt([]interface{}{who.String()}, at)...)
}

// GetFeeByCallAndLength returns the fee for a call of the given
// encoded length.
func (c *Client) GetFeeByCallAndLength(call string, txLen uint64, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getFeeByCallAndLength", withAt([]interface{}{call, txLen}, at)...)
}

// GetWithdrawTx returns the current withdrawal transaction on a
// bridged chain.
func (c *Client) GetWithdrawTx(chain string, at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_getWithdrawTx", withAt([]interface{}{chain}, at)...)
}

// GetMockBitcoinNewTrustees previews the trustee set for candidate
// accounts.
func (c *Client) GetMockBitcoinNewTrustees(candidates []types.AccountID, at *types.Hash) (json.RawMessage, error) {
	addrs := make([]string, 0, len(candidates))
	for _, a := range candidates {
		addrs = append(addrs, a.String())
	}
	return c.raw("chainx_getMockBitcoinNewTrustees", withAt([]interface{}{addrs}, at)...)
}

// GetParticularAccounts returns the chain's special accounts (team,
// council, foundation).
func (c *Client) GetParticularAccounts(at *types.Hash) (json.RawMessage, error) {
	return c.raw("chainx_particularAccounts", withAt(nil, at)...)
}
