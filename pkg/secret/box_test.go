package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_EncryptDecrypt(t *testing.T) {
	box, err := NewBox("passphrase")
	require.NoError(t, err)

	sealed, err := box.Encrypt("AIza-test-key")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "AIza")

	again, err := box.Encrypt("AIza-test-key")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per call")

	plain, err := box.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "AIza-test-key", plain)
}

func TestBox_DecryptWithOtherKeyFails(t *testing.T) {
	a, _ := NewBox("one")
	b, _ := NewBox("two")

	sealed, err := a.Encrypt("value")
	require.NoError(t, err)

	_, err = b.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = a.Decrypt("c2hvcnQ=")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestNewBox_EmptyPassphrase(t *testing.T) {
	_, err := NewBox("")
	assert.Error(t, err)
}
