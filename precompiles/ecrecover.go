package precompiles

import "github.com/cancunvm/engine/crypto"

// runEcrecover implements the ECRECOVER precompile (address 0x01):
// input is [hash(32) || v(32) || r(32) || s(32)]; output is the
// 32-byte left-padded address that signed hash, or all-zero on any
// recovery failure (never an error, per EIP-2).
func runEcrecover(input []byte) ([]byte, error) {
	input = padRight(input, 128)

	hash := input[0:32]
	v := input[32:64]
	r := input[64:96]
	s := input[96:128]

	// v occupies a full 32-byte word but must fit a single byte equal
	// to 27 or 28 (the Ethereum yellow-paper convention).
	for _, b := range v[:31] {
		if b != 0 {
			return emptyResult(), nil
		}
	}
	vByte := v[31]
	if vByte != 27 && vByte != 28 {
		return emptyResult(), nil
	}

	if !crypto.ValidateSignatureValues(r, s, true) {
		return emptyResult(), nil
	}

	sig := make([]byte, crypto.SignatureLength)
	copy(sig[0:32], r)
	copy(sig[32:64], s)
	sig[64] = vByte - 27

	pub, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return emptyResult(), nil
	}
	addr := crypto.Keccak256(pub[1:])
	return leftPad32(addr[12:]), nil
}

func emptyResult() []byte { return make([]byte, 32) }
