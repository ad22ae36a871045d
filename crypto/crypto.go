// Package crypto provides the keccak-256 hashing primitives the engine
// needs: account code hashing, CREATE/CREATE2 address derivation, and the
// SHA3 opcode.
package crypto

import (
	"errors"
	"hash"
	"sync"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/rlp"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

// KeccakState wraps sha3.state with a Read method exposed so callers can
// pull fixed-length output without allocating.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

var keccakPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256().(KeccakState) },
}

// NewKeccakState returns a pooled keccak-256 state, reset and ready to use.
func NewKeccakState() KeccakState {
	h := keccakPool.Get().(KeccakState)
	h.Reset()
	return h
}

// PutKeccakState returns a keccak-256 state to the pool.
func PutKeccakState(h KeccakState) { keccakPool.Put(h) }

// Keccak256 returns the keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	h := NewKeccakState()
	defer PutKeccakState(h)
	for _, b := range data {
		h.Write(b)
	}
	out := make([]byte, 32)
	h.Read(out)
	return out
}

// Keccak256Hash returns the keccak-256 digest of the concatenation of data
// as a common.Hash.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	defer PutKeccakState(d)
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// EmptyCodeHash is the keccak-256 digest of the empty byte string, the
// canonical code_hash of an account with no code.
var EmptyCodeHash = Keccak256Hash(nil)

// CreateAddress derives the address of a contract deployed by sender at
// the given account nonce: keccak256(rlp([sender, nonce]))[12:].
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	data := rlp.EncodeList(rlp.EncodeBytes(sender[:]), rlp.EncodeUint64(nonce))
	return common.BytesToAddress(Keccak256(data))
}

// CreateAddress2 derives the address of a contract deployed via CREATE2:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initcode))[12:].
func CreateAddress2(sender common.Address, salt common.Hash, initCodeHash []byte) common.Address {
	data := make([]byte, 0, 1+20+32+32)
	data = append(data, 0xff)
	data = append(data, sender[:]...)
	data = append(data, salt[:]...)
	data = append(data, initCodeHash...)
	return common.BytesToAddress(Keccak256(data))
}

// SignatureLength is the byte length of an [R || S || V] signature, the
// format the ECRECOVER precompile's input is assembled into.
const SignatureLength = 64 + 1

// Ecrecover returns the uncompressed public key that produced sig over
// hash. sig must be 65 bytes, [R || S || V] with V in {0, 1}.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	if len(sig) != SignatureLength {
		return nil, errors.New("crypto: invalid signature length")
	}
	// decred's RecoverCompact wants the recovery id as the first byte,
	// offset by 27; Ethereum's convention puts it last, offset by 0/1.
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = sig[64] + 27
	copy(btcsig[1:], sig[:64])

	pub, _, err := decred_ecdsa.RecoverCompact(btcsig, hash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// ValidateSignatureValues reports whether r and s are valid ECDSA
// signature scalars for secp256k1: both in [1, N-1] (homestead requires
// s additionally be in the lower half of the curve order).
func ValidateSignatureValues(r, s []byte, homestead bool) bool {
	var rs, ss secp256k1.ModNScalar
	if overflow := rs.SetByteSlice(r); overflow || rs.IsZero() {
		return false
	}
	if overflow := ss.SetByteSlice(s); overflow || ss.IsZero() {
		return false
	}
	if homestead && ss.IsOverHalfOrder() {
		return false
	}
	return true
}

