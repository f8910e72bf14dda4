package common

// WipeByteArray zeroes a sensitive byte slice after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
