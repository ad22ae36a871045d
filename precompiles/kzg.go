package precompiles

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"sync"

	gokzg4844 "github.com/crate-crypto/go-kzg-4844"
)

// versionedHashVersionKZG is the version byte prefixing EIP-4844's
// versioned blob commitment hashes.
const versionedHashVersionKZG = 0x01

var (
	kzgCtx     *gokzg4844.Context
	initKZGCtx sync.Once

	kzgReturnValue [64]byte
	initReturn     sync.Once
)

func kzgContext() *gokzg4844.Context {
	initKZGCtx.Do(func() {
		var err error
		kzgCtx, err = gokzg4844.NewContext4096Secure()
		if err != nil {
			panic("precompiles: failed to load embedded KZG trusted setup: " + err.Error())
		}
	})
	return kzgCtx
}

func kzgSuccessValue() []byte {
	initReturn.Do(func() {
		new(big.Int).SetUint64(gokzg4844.ScalarsPerBlob).FillBytes(kzgReturnValue[:32])
		copy(kzgReturnValue[32:], gokzg4844.BlsModulus[:])
	})
	out := kzgReturnValue
	return out[:]
}

// runKZGPointEvaluation implements the point evaluation precompile
// (address 0x0a, EIP-4844). Input is
// [versioned_hash(32) || z(32) || y(32) || commitment(48) || proof(48)];
// on success the output is the fixed pair
// [FIELD_ELEMENTS_PER_BLOB(32) || BLS_MODULUS(32)].
func runKZGPointEvaluation(input []byte) ([]byte, error) {
	if len(input) != 192 {
		return nil, errors.New("kzg: invalid input length, expected 192 bytes")
	}

	var commitment gokzg4844.KZGCommitment
	copy(commitment[:], input[96:144])

	versionedHash := kzgToVersionedHash(commitment)
	if !bytesEqual(versionedHash[:], input[0:32]) {
		return nil, errors.New("kzg: commitment does not match versioned hash")
	}

	var z, y [32]byte
	copy(z[:], input[32:64])
	copy(y[:], input[64:96])
	var proof gokzg4844.KZGProof
	copy(proof[:], input[144:192])

	if err := kzgContext().VerifyKZGProof(commitment, z, y, proof); err != nil {
		return nil, err
	}
	return kzgSuccessValue(), nil
}

func kzgToVersionedHash(commitment gokzg4844.KZGCommitment) [32]byte {
	h := sha256.Sum256(commitment[:])
	h[0] = versionedHashVersionKZG
	return h
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
