package pulsewire

// AssembleBytes packs bits into bytes in non-overlapping groups of eight. The
// first bit of a group becomes the least significant bit. A group containing
// any invalid bit produces no byte. Bits after the last full group are not
// packed; their count is returned as trailing.
func AssembleBytes(bits []Bit) (out []byte, trailing int) {
	full := len(bits) - len(bits)%8
	out = make([]byte, 0, full/8)

	for i := 0; i < full; i += 8 {
		if b, ok := packGroup(bits[i : i+8]); ok {
			out = append(out, b)
		}
	}
	return out, len(bits) - full
}

func packGroup(group []Bit) (byte, bool) {
	var b byte
	for j, bit := range group {
		switch bit {
		case BitOne:
			b |= 1 << j
		case BitZero:
		default:
			return 0, false
		}
	}
	return b, true
}
