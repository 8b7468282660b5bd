package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalise_PassesTextThrough(t *testing.T) {
	got, err := New().Normalise([]byte("  hello\r\nworld\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)
}

func TestNormalise_KeepsInteriorFormatting(t *testing.T) {
	got, err := New().Normalise([]byte("a\n\n\tindented\n"))
	require.NoError(t, err)
	assert.Equal(t, "a\n\n\tindented", got)
}

func TestNormalise_RejectsBinary(t *testing.T) {
	_, err := New().Normalise([]byte{0x89, 'P', 'N', 'G', 0xff})
	assert.ErrorIs(t, err, ErrNotText)
}
