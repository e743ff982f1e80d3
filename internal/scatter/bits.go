package scatter

// BytesToBits unpacks data into one byte per bit, MSB first. The MSB-first
// order is part of the version-1 format contract.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>shift)&1)
		}
	}
	return bits
}

// BitsToBytes packs MSB-first bits back into bytes. Trailing bits that do
// not fill a whole byte are dropped.
func BitsToBytes(bits []byte) []byte {
	data := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i+j]&1
		}
		data = append(data, b)
	}
	return data
}
