package memzero_test

import (
	"testing"

	"realestate/internal/util/memzero"
)

func TestZero(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{0xff, 0x10}
	memzero.Zero(a, nil, b)
	for i, v := range append(a, b...) {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
	memzero.Zero()
}
