package domain

// Zero overwrites a byte slice with zeros so key material does not linger in memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
