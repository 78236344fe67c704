package shortvec

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

func TestShortVec_Valid(t *testing.T) {
	for i := 0; i <= math.MaxUint16; i++ {
		encoded, err := AppendLen(nil, i)
		require.NoError(t, err)

		var actual, offset int
		require.NoError(t, GetLen(encoded, &actual, &offset))
		require.Equal(t, i, actual)
		require.Equal(t, len(encoded), offset)
	}
}

func TestShortVec_CrossImpl(t *testing.T) {
	for _, tc := range []struct {
		val     int
		encoded []byte
	}{
		{0x0, []byte{0x0}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0xff, []byte{0xff, 0x01}},
		{0x100, []byte{0x80, 0x02}},
		{0x7fff, []byte{0xff, 0xff, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	} {
		encoded, err := AppendLen([]byte{0xaa}, tc.val)
		require.NoError(t, err)
		assert.Equal(t, append([]byte{0xaa}, tc.encoded...), encoded)
	}
}

func TestShortVec_Invalid(t *testing.T) {
	_, err := AppendLen(nil, math.MaxUint16+1)
	assert.Equal(t, ErrLengthTooLarge, err)

	var val, offset int

	// Continuation bit set on the final available byte
	err = GetLen([]byte{0x80}, &val, &offset)
	assert.True(t, errors.Is(err, binary.ErrTruncatedInput))
	assert.Equal(t, 0, offset)

	err = GetLen([]byte{0x80, 0x80, 0x80, 0x01}, &val, &offset)
	assert.Error(t, err)
	assert.Equal(t, 0, offset)

	err = GetLen([]byte{0xff, 0xff, 0x04}, &val, &offset)
	assert.Equal(t, ErrLengthTooLarge, err)
}
