package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
)

var ErrEmptyKey = errors.New("encryption key is empty")

// Cipher encrypts and decrypts credentials with AES-GCM under a key
// derived from the configured secret.
type Cipher struct {
	aead cipher.AEAD
}

func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptyKey
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt returns the plaintext for a value produced by Encrypt. Malformed
// input or a wrong key yields an empty string: password display degrades
// instead of failing the request.
func (c *Cipher) Decrypt(ciphertext string) string {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		log.Debug().Err(err).Msg("decrypt: ciphertext is not valid base64")
		return ""
	}
	if len(data) < c.aead.NonceSize() {
		log.Debug().Msg("decrypt: ciphertext shorter than nonce")
		return ""
	}

	nonce, sealed := data[:c.aead.NonceSize()], data[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		log.Debug().Err(err).Msg("decrypt: authentication failed")
		return ""
	}
	return string(plaintext)
}
