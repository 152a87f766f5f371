package internal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnikassa/config"
	"omnikassa/entity"
)

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestEncryptorSeal(t *testing.T) {
	encryptor := NewEncryptor("secret", "")

	seal, err := encryptor.Seal("amount=200|currencyCode=978")
	require.NoError(t, err)
	assert.Equal(t, sha256Hex("amount=200|currencyCode=978secret"), seal)
	assert.Len(t, seal, 64)

	again, err := encryptor.Seal("amount=200|currencyCode=978")
	require.NoError(t, err)
	assert.Equal(t, seal, again)
}

func TestEncryptorSeal_Hmac(t *testing.T) {
	encryptor := NewEncryptor("secret", config.SealHmacSha256)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("amount=200"))

	seal, err := encryptor.Seal("amount=200")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), seal)
}

func TestEncryptorSeal_NoSecret(t *testing.T) {
	_, err := NewEncryptor("", config.SealSha256).Seal("amount=200")
	var missing *entity.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "secretKey", missing.Field)
}

func TestEncryptorVerify(t *testing.T) {
	encryptor := NewEncryptor("secret", config.SealSha256)
	seal, err := encryptor.Seal("responseCode=00")
	require.NoError(t, err)

	require.NoError(t, encryptor.Verify("responseCode=00", seal))

	var integrity *entity.IntegrityError
	assert.ErrorAs(t, encryptor.Verify("responseCode=05", seal), &integrity)
	assert.ErrorAs(t, encryptor.Verify("responseCode=00", seal[:63]), &integrity)
	assert.ErrorAs(t, NewEncryptor("other", "").Verify("responseCode=00", seal), &integrity)
}
