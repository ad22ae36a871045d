package rlp

import (
	"bytes"
	"testing"
)

func TestEncodeUint64(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x80}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x80}},
		{256, []byte{0x82, 0x01, 0x00}},
	}
	for _, c := range cases {
		if got := EncodeUint64(c.v); !bytes.Equal(got, c.want) {
			t.Errorf("EncodeUint64(%d) = %x, want %x", c.v, got, c.want)
		}
	}
}

func TestEncodeBytesShortString(t *testing.T) {
	// A single byte below 0x80 encodes as itself, no header.
	if got := EncodeBytes([]byte{0x01}); !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("EncodeBytes([0x01]) = %x, want 01", got)
	}
	if got := EncodeBytes([]byte("dog")); !bytes.Equal(got, []byte{0x83, 'd', 'o', 'g'}) {
		t.Errorf("EncodeBytes(dog) = %x, want 83646f67", got)
	}
}

func TestEncodeListRoundTrip(t *testing.T) {
	encoded := EncodeList(
		EncodeUint64(9),
		EncodeBytes([]byte("cat")),
		EncodeBytes(nil),
	)
	items, err := DecodeList(encoded)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if !bytes.Equal(items[0], []byte{9}) {
		t.Errorf("items[0] = %x, want 09", items[0])
	}
	if string(items[1]) != "cat" {
		t.Errorf("items[1] = %q, want cat", items[1])
	}
	if len(items[2]) != 0 {
		t.Errorf("items[2] = %x, want empty (zero encodes as empty string)", items[2])
	}
}

func TestDecodeListRejectsNestedLists(t *testing.T) {
	inner := EncodeList(EncodeUint64(1))
	outer := EncodeList(inner)
	if _, err := DecodeList(outer); err == nil {
		t.Error("DecodeList accepted a nested list, want an error")
	}
}

func TestDecodeListMalformedInput(t *testing.T) {
	if _, err := DecodeList(nil); err != ErrMalformed {
		t.Errorf("DecodeList(nil) = %v, want ErrMalformed", err)
	}
	// Claims a 56-byte list payload but supplies none.
	truncated := []byte{0xc0 + 55 + 1, 56}
	if _, err := DecodeList(truncated); err == nil {
		t.Error("DecodeList accepted truncated input, want an error")
	}
}

func TestEncodeListLongPayload(t *testing.T) {
	big := make([]byte, 100)
	for i := range big {
		big[i] = byte(i)
	}
	encoded := EncodeList(EncodeBytes(big))
	items, err := DecodeList(encoded)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if !bytes.Equal(items[0], big) {
		t.Error("round trip through a long list payload lost data")
	}
}
