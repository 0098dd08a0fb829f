package common

// WipeByteArray overwrites b with zeros. Used for password buffers read from
// the terminal once their string copy has been handed over.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
