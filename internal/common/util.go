package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to clear secrets from memory as soon as they are no longer
// needed. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
