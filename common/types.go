// Package common defines the fixed-size value types shared across the
// engine: 20-byte account addresses and 32-byte hashes.
package common

import (
	"encoding/hex"
	"fmt"
)

// Lengths of hashes and addresses in bytes.
const (
	HashLength    = 32
	AddressLength = 20
)

// Hash represents a 32-byte value, typically a keccak256 digest.
type Hash [HashLength]byte

// BytesToHash sets the trailing HashLength bytes of b (left-padding or
// truncating from the left as needed) into a new Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Bytes returns the byte representation of h.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the "0x"-prefixed hex encoding of h.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// MarshalText renders h the same way Hex does, so encoding/json emits a
// "0x..." string instead of a raw byte array.
func (h Hash) MarshalText() ([]byte, error) { return []byte(h.Hex()), nil }

// UnmarshalText parses the "0x..."-prefixed form MarshalText produces.
func (h *Hash) UnmarshalText(text []byte) error {
	*h = BytesToHash(mustHexDecode(text))
	return nil
}

// SetBytes sets h to the value of b, left-padding or truncating as needed.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Cmp compares two hashes lexically.
func (h Hash) Cmp(other Hash) int {
	for i := range h {
		if h[i] != other[i] {
			if h[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Address represents a 20-byte Ethereum-style account identifier.
type Address [AddressLength]byte

// BytesToAddress sets the trailing AddressLength bytes of b into a new
// Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses s (with or without "0x" prefix) into an Address.
func HexToAddress(s string) Address {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToAddress(b)
}

// Bytes returns the byte representation of a.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the "0x"-prefixed hex encoding of a.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// MarshalText renders a the same way Hex does, so encoding/json emits a
// "0x..." string instead of a raw byte array.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.Hex()), nil }

// UnmarshalText parses the "0x..."-prefixed form MarshalText produces.
func (a *Address) UnmarshalText(text []byte) error {
	*a = BytesToAddress(mustHexDecode(text))
	return nil
}

// mustHexDecode strips an optional "0x"/"0X" prefix and decodes the
// rest, returning nil on malformed input (callers get a zero-value
// Address/Hash instead of a decode error, matching HexToAddress).
func mustHexDecode(text []byte) []byte {
	s := string(text)
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return b
}

// Hash returns a's value left-padded into a Hash, the representation used
// when an address is pushed onto the EVM stack or kept as a storage key.
func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Cmp compares two addresses lexically.
func (a Address) Cmp(other Address) int {
	for i := range a {
		if a[i] != other[i] {
			if a[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// GoString implements fmt.GoStringer, so %#v prints the hex form.
func (a Address) GoString() string { return fmt.Sprintf("Address(%s)", a.Hex()) }
