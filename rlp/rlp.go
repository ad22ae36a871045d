// Package rlp implements the minimal subset of Ethereum's Recursive
// Length Prefix encoding this engine needs: encoding/decoding the
// account record written to the persistent backend, and the
// sender/nonce list CREATE hashes to derive a contract address. RLP
// encoding of account records sits at the engine's external boundary
// (see spec.md §1/§6) — this is a concrete, tested subset, not the
// general reflection-based encoder go-ethereum's own rlp package
// provides for arbitrary Go values.
package rlp

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned by Decode-family functions on truncated or
// otherwise invalid input.
var ErrMalformed = errors.New("rlp: malformed input")

// EncodeUint64 encodes v as a minimal big-endian RLP string (an empty
// string for 0).
func EncodeUint64(v uint64) []byte {
	if v == 0 {
		return EncodeBytes(nil)
	}
	b := make([]byte, 8)
	n := 8
	for v > 0 {
		n--
		b[n] = byte(v)
		v >>= 8
	}
	return EncodeBytes(b[n:])
}

// EncodeBytes encodes b as an RLP string.
func EncodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return append(header(0x80, len(b)), b...)
}

// EncodeList wraps the already-encoded items in an RLP list header.
func EncodeList(items ...[]byte) []byte {
	var payload []byte
	for _, it := range items {
		payload = append(payload, it...)
	}
	return append(header(0xc0, len(payload)), payload...)
}

func header(base byte, size int) []byte {
	if size < 56 {
		return []byte{base + byte(size)}
	}
	sb := minimalBigEndian(uint64(size))
	return append([]byte{base + 55 + byte(len(sb))}, sb...)
}

func minimalBigEndian(v uint64) []byte {
	b := make([]byte, 8)
	n := 8
	for v > 0 {
		n--
		b[n] = byte(v)
		v >>= 8
	}
	if n == 8 {
		return []byte{0}
	}
	return b[n:]
}

// decoded list item, either a string (Data) or a nested list (Items).
type item struct {
	data  []byte
	items []item
}

// DecodeList decodes the outermost RLP list in b into its items' raw
// string payloads, rejecting any nested lists (account records are a
// flat list of four strings).
func DecodeList(b []byte) ([][]byte, error) {
	if len(b) == 0 {
		return nil, ErrMalformed
	}
	it, rest, err := decodeItem(b)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("rlp: %d trailing bytes", len(rest))
	}
	if it.items == nil && it.data != nil {
		return nil, errors.New("rlp: expected list, got string")
	}
	out := make([][]byte, 0, len(it.items))
	for _, sub := range it.items {
		if sub.items != nil {
			return nil, errors.New("rlp: nested lists not supported")
		}
		out = append(out, sub.data)
	}
	return out, nil
}

func decodeItem(b []byte) (item, []byte, error) {
	if len(b) == 0 {
		return item{}, nil, ErrMalformed
	}
	prefix := b[0]
	switch {
	case prefix < 0x80:
		return item{data: b[0:1]}, b[1:], nil
	case prefix < 0xb8:
		size := int(prefix - 0x80)
		if len(b) < 1+size {
			return item{}, nil, ErrMalformed
		}
		return item{data: b[1 : 1+size]}, b[1+size:], nil
	case prefix < 0xc0:
		lenOfLen := int(prefix - 0xb7)
		if len(b) < 1+lenOfLen {
			return item{}, nil, ErrMalformed
		}
		size := int(decodeUint(b[1 : 1+lenOfLen]))
		start := 1 + lenOfLen
		if len(b) < start+size {
			return item{}, nil, ErrMalformed
		}
		return item{data: b[start : start+size]}, b[start+size:], nil
	case prefix < 0xf8:
		size := int(prefix - 0xc0)
		if len(b) < 1+size {
			return item{}, nil, ErrMalformed
		}
		items, err := decodeItems(b[1 : 1+size])
		if err != nil {
			return item{}, nil, err
		}
		return item{items: items}, b[1+size:], nil
	default:
		lenOfLen := int(prefix - 0xf7)
		if len(b) < 1+lenOfLen {
			return item{}, nil, ErrMalformed
		}
		size := int(decodeUint(b[1 : 1+lenOfLen]))
		start := 1 + lenOfLen
		if len(b) < start+size {
			return item{}, nil, ErrMalformed
		}
		items, err := decodeItems(b[start : start+size])
		if err != nil {
			return item{}, nil, err
		}
		return item{items: items}, b[start+size:], nil
	}
}

func decodeItems(b []byte) ([]item, error) {
	var items []item
	for len(b) > 0 {
		it, rest, err := decodeItem(b)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		b = rest
	}
	return items, nil
}

func decodeUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
