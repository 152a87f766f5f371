package internal

import (
	"crypto/subtle"

	"gitee.com/golang-module/dongle"

	"omnikassa/config"
	"omnikassa/entity"
)

// Encryptor computes and checks the seal of a Data string.
//
// The default seal is hex(sha256(data + secret)), the format the gateway
// checks. The HMAC_SHA256 version computes hex(hmac_sha256(secret, data)).
type Encryptor struct {
	secret  string
	version string
}

func NewEncryptor(secret string, version string) *Encryptor {
	if version == "" {
		version = config.SealSha256
	}
	return &Encryptor{
		secret:  secret,
		version: version,
	}
}

// Seal returns the lower-case hex seal of data.
func (e *Encryptor) Seal(data string) (string, error) {
	if e.secret == "" {
		return "", &entity.MissingFieldError{Field: "secretKey"}
	}
	if e.version == config.SealHmacSha256 {
		return dongle.Encrypt.FromString(data).ByHmacSha256(e.secret).ToHexString(), nil
	}
	return dongle.Encrypt.FromString(data + e.secret).BySha256().ToHexString(), nil
}

// Verify recomputes the seal of data and compares it with the received one.
func (e *Encryptor) Verify(data string, seal string) error {
	expected, err := e.Seal(data)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(seal)) != 1 {
		return &entity.IntegrityError{}
	}
	return nil
}
