package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModifiedUtf8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("java/lang/Object"), "java/lang/Object"},
		{"two byte nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b"},
		{"two byte", []byte{0xC3, 0xA9}, "é"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		{"surrogate pair", []byte{0xED, 0xA0, 0xB5, 0xED, 0xB4, 0x98}, "\U0001D518"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeModifiedUtf8(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeModifiedUtf8Errors(t *testing.T) {
	for _, in := range [][]byte{{0xFF}, {0xC3}, {0xE2, 0x82}} {
		_, err := decodeModifiedUtf8(in)
		assert.ErrorIs(t, err, ErrMalformed, "% X", in)
	}
}
