package precompiles

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // EVM-mandated, no substitute
)

// runSha256 implements the SHA256 precompile (address 0x02).
func runSha256(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// runRipemd160 implements the RIPEMD160 precompile (address 0x03),
// returned 32-byte left-padded per the yellow paper's word alignment.
func runRipemd160(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	return leftPad32(h.Sum(nil)), nil
}

// runIdentity implements the IDENTITY precompile (address 0x04): a
// verbatim copy of input.
func runIdentity(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}
