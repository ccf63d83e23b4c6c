package common

// WipeByteArray overwrites the buffer with zeroes. Password buffers read
// from the terminal should be wiped once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
