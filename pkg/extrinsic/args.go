package extrinsic

import (
	"github.com/chainx-org/chainx-cli/pkg/scale"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

// Argument encoding helpers for the handful of call shapes the CLI
// submits.

// AppendAddress appends a MultiAddress::Id destination.
func AppendAddress(buf []byte, who types.AccountID) []byte {
	buf = scale.AppendUint8(buf, addressTagID)
	return append(buf, who[:]...)
}

// AppendAccountID appends a bare 32-byte account, for calls that take
// an AccountId rather than a lookup source.
func AppendAccountID(buf []byte, who types.AccountID) []byte {
	return append(buf, who[:]...)
}

// AppendBalance appends a compact-encoded balance.
func AppendBalance(buf []byte, amount uint64) []byte {
	return scale.AppendCompact(buf, amount)
}

// AppendMemo appends a length-prefixed byte memo.
func AppendMemo(buf []byte, memo string) []byte {
	return scale.AppendBytes(buf, []byte(memo))
}

// AppendAssetID appends a u32 asset identifier.
func AppendAssetID(buf []byte, id uint32) []byte {
	return scale.AppendUint32(buf, id)
}
