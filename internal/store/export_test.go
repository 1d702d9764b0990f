package store

// UseFastKDF lowers the scrypt cost for the duration of a test.
func UseFastKDF() (restore func()) {
	prev := scryptN
	scryptN = 1 << 10
	return func() { scryptN = prev }
}
