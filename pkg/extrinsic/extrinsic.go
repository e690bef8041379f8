package extrinsic

import (
	"github.com/chainx-org/chainx-cli/pkg/scale"
	"github.com/chainx-org/chainx-cli/pkg/types"
	"golang.org/x/crypto/blake2b"
)

// Extrinsic format version 4, with the signed bit set in the leading
// version byte.
const (
	txVersion       = 4
	signedMask      = 0x80
	addressTagID    = 0x00 // MultiAddress::Id
	signatureTagSig = 0x02 // MultiSignature::Ecdsa
)

// Signer produces a signature over a signing payload and knows the
// on-chain account it signs for.
type Signer interface {
	// Sign signs the 32-byte blake2b digest or the raw payload,
	// whichever the caller hands it. ECDSA signers return the 65-byte
	// recoverable form.
	Sign(msg []byte) ([]byte, error)
	AccountID() types.AccountID
}

// SigningContext carries the chain state a signature commits to. Era
// is always immortal, so only the genesis hash is needed.
type SigningContext struct {
	SpecVersion uint32
	TxVersion   uint32
	GenesisHash types.Hash
	Nonce       uint64
	Tip         uint64
}

// Call is a dispatchable call: its resolved index and SCALE-encoded
// arguments.
type Call struct {
	Index CallIndex
	Args  []byte
}

// Encode appends the call's wire form.
func (c Call) Encode(buf []byte) []byte {
	buf = scale.AppendUint8(buf, c.Index.Module)
	buf = scale.AppendUint8(buf, c.Index.Call)
	return append(buf, c.Args...)
}

// NewSigned builds, signs and encodes a signed version 4 extrinsic,
// returning its length-prefixed wire form ready for
// author_submitExtrinsic.
func NewSigned(call Call, signer Signer, ctx SigningContext) ([]byte, error) {
	payload := signingPayload(call, ctx)
	// Long payloads are signed by digest, short ones directly.
	if len(payload) > 256 {
		digest := blake2b.Sum256(payload)
		payload = digest[:]
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return nil, err
	}

	var body []byte
	body = scale.AppendUint8(body, txVersion|signedMask)
	body = scale.AppendUint8(body, addressTagID)
	who := signer.AccountID()
	body = append(body, who[:]...)
	body = scale.AppendUint8(body, signatureTagSig)
	body = append(body, sig...)
	body = appendExtra(body, ctx)
	body = call.Encode(body)

	out := scale.AppendCompact(nil, uint64(len(body)))
	return append(out, body...), nil
}

// NewUnsigned encodes an unsigned version 4 extrinsic.
func NewUnsigned(call Call) []byte {
	var body []byte
	body = scale.AppendUint8(body, txVersion)
	body = call.Encode(body)

	out := scale.AppendCompact(nil, uint64(len(body)))
	return append(out, body...)
}

// signingPayload is the byte string the sender signs: the call, the
// signed extra (era, nonce, tip) and the additional signed data (spec
// version, transaction version, genesis hash twice since the era is
// immortal).
func signingPayload(call Call, ctx SigningContext) []byte {
	var buf []byte
	buf = call.Encode(buf)
	buf = appendExtra(buf, ctx)
	buf = scale.AppendUint32(buf, ctx.SpecVersion)
	buf = scale.AppendUint32(buf, ctx.TxVersion)
	buf = append(buf, ctx.GenesisHash[:]...)
	buf = append(buf, ctx.GenesisHash[:]...)
	return buf
}

func appendExtra(buf []byte, ctx SigningContext) []byte {
	buf = scale.AppendUint8(buf, 0x00) // immortal era
	buf = scale.AppendCompact(buf, ctx.Nonce)
	buf = scale.AppendCompact(buf, ctx.Tip)
	return buf
}
