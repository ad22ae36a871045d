package vm

// getData returns data[start:start+size], right-padded with zero bytes
// when that range runs past the end of data. Ported from the teacher's
// core/vm/common.go, used by CALLDATALOAD/CALLDATACOPY/CODECOPY/
// EXTCODECOPY wherever the spec calls for "zero-padded" reads.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return rightPad(data[start:end], size)
}

func rightPad(b []byte, size uint64) []byte {
	if uint64(len(b)) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

const maxWordCeiledSize = ^uint64(0) - 31

// toWordSize returns the ceiled word count required to hold size bytes.
func toWordSize(size uint64) uint64 {
	if size > maxWordCeiledSize {
		return ^uint64(0)/32 + 1
	}
	return (size + 31) / 32
}
