package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C_KnownValue(t *testing.T) {
	// RFC 3720 test vector: 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))
	assert.Equal(t, "ipE2qg==", Base64CRC32C(make([]byte, 32)))
}

func TestVerify(t *testing.T) {
	data := []byte("interior signatures only")
	require.NoError(t, Verify(data, CRC32C(data)))

	err := Verify(data, 0x8a9136aa)
	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, CRC32C(data), me.Got)
	assert.Equal(t, uint32(0x8a9136aa), me.Want)
	assert.Contains(t, err.Error(), "want 8a9136aa")
}
