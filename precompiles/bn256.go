package precompiles

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// BN254 (alt_bn128) point addition, scalar multiplication, and pairing
// check, addresses 0x06-0x08 (EIP-196/EIP-197; no gas is charged). Points
// are encoded as in go-ethereum's cloudflare bn256 wrapper: a G1 point
// is [X(32) | Y(32)] big-endian; a G2 point is [X.A0(32) | X.A1(32) |
// Y.A0(32) | Y.A1(32)], real coefficient before imaginary, matching
// erigon's G1 UnmarshalCurvePoint/MarshalCurvePoint convention extended
// to the quadratic-extension G2 coordinates.

func unmarshalG1(input []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(input) != 64 {
		return p, errors.New("bn256: invalid G1 point length")
	}
	allZero := true
	for _, b := range input {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return p, nil
	}
	if err := p.X.SetBytesCanonical(input[:32]); err != nil {
		return p, err
	}
	if err := p.Y.SetBytesCanonical(input[32:64]); err != nil {
		return p, err
	}
	if !p.IsInSubGroup() {
		return p, errors.New("bn256: G1 point not in subgroup")
	}
	return p, nil
}

func marshalG1(p *bn254.G1Affine) []byte {
	out := make([]byte, 0, 64)
	x := p.X.Bytes()
	y := p.Y.Bytes()
	out = append(out, x[:]...)
	out = append(out, y[:]...)
	return out
}

func unmarshalG2(input []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(input) != 128 {
		return p, errors.New("bn256: invalid G2 point length")
	}
	allZero := true
	for _, b := range input {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return p, nil
	}
	if err := p.X.A0.SetBytesCanonical(input[0:32]); err != nil {
		return p, err
	}
	if err := p.X.A1.SetBytesCanonical(input[32:64]); err != nil {
		return p, err
	}
	if err := p.Y.A0.SetBytesCanonical(input[64:96]); err != nil {
		return p, err
	}
	if err := p.Y.A1.SetBytesCanonical(input[96:128]); err != nil {
		return p, err
	}
	if !p.IsInSubGroup() {
		return p, errors.New("bn256: G2 point not in subgroup")
	}
	return p, nil
}

// runBn256Add implements BN256_ADD (address 0x06).
func runBn256Add(input []byte) ([]byte, error) {
	input = padRight(input, 128)
	x, err := unmarshalG1(input[0:64])
	if err != nil {
		return nil, err
	}
	y, err := unmarshalG1(input[64:128])
	if err != nil {
		return nil, err
	}
	xj := new(bn254.G1Jac).FromAffine(&x)
	yj := new(bn254.G1Jac).FromAffine(&y)
	sum := new(bn254.G1Affine).FromJacobian(xj.AddAssign(yj))
	return marshalG1(sum), nil
}

// runBn256ScalarMul implements BN256_MUL (address 0x07).
func runBn256ScalarMul(input []byte) ([]byte, error) {
	input = padRight(input, 96)
	p, err := unmarshalG1(input[0:64])
	if err != nil {
		return nil, err
	}
	scalar := new(big.Int).SetBytes(input[64:96])
	pj := new(bn254.G1Jac).FromAffine(&p)
	pj.ScalarMultiplication(pj, scalar)
	res := new(bn254.G1Affine).FromJacobian(pj)
	return marshalG1(res), nil
}

// runBn256Pairing implements BN256_PAIRING (address 0x08): input is k
// concatenated 192-byte (G1, G2) pairs; output is 32 bytes, 1 if the
// product of pairings is the identity in GT, 0 otherwise. k=0 is
// defined to succeed (the empty product is the identity).
func runBn256Pairing(input []byte) ([]byte, error) {
	if len(input)%192 != 0 {
		return nil, errors.New("bn256: pairing input length not a multiple of 192")
	}
	k := len(input) / 192
	g1s := make([]bn254.G1Affine, k)
	g2s := make([]bn254.G2Affine, k)
	for i := 0; i < k; i++ {
		chunk := input[i*192 : (i+1)*192]
		p, err := unmarshalG1(chunk[0:64])
		if err != nil {
			return nil, err
		}
		q, err := unmarshalG2(chunk[64:192])
		if err != nil {
			return nil, err
		}
		g1s[i] = p
		g2s[i] = q
	}

	out := make([]byte, 32)
	if k == 0 {
		out[31] = 1
		return out, nil
	}
	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	if ok {
		out[31] = 1
	}
	return out, nil
}
