package id3v2

// decodeSyncSafe32 decodes a 4-byte sync-safe integer: each byte's high bit
// must be clear, and the 28 remaining bits are packed MSB-first 7 bits at a
// time. It reports ok=false if any byte has bit 7 set, in which case the
// caller must treat the size as invalid.
func decodeSyncSafe32(b [4]byte) (value int, ok bool) {
	for _, x := range b {
		if x&0x80 != 0 {
			return 0, false
		}
	}
	v := 0
	for _, x := range b {
		v = (v << 7) | int(x&0x7f)
	}
	return v, true
}

// encodeSyncSafe32 is the inverse of decodeSyncSafe32, used by tests to
// build literal fixtures without hand-computing sync-safe bytes.
func encodeSyncSafe32(size int) [4]byte {
	var b [4]byte
	for i := 3; i >= 0; i-- {
		b[i] = byte(size & 0x7f)
		size >>= 7
	}
	return b
}

// decodeSyncSafe35 decodes the 5-byte, 35-bit sync-safe integer used by the
// v2.4 extended header's CRC-32 sub-field: each byte is shifted by 28, 21,
// 14, 7, 0 bits and OR'd together.
func decodeSyncSafe35(b [5]byte) uint64 {
	shifts := [5]uint{28, 21, 14, 7, 0}
	var v uint64
	for i, x := range b {
		v |= uint64(x&0x7f) << shifts[i]
	}
	return v
}
