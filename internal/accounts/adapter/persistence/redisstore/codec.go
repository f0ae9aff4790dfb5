package redisstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
)

// sessionCodec seals session payloads with AES-GCM before they reach
// Redis, keyed by a digest of the session-store encryption secret. A new
// random 12-byte nonce is generated per seal and prefixed to the
// ciphertext.
type sessionCodec struct {
	aead cipher.AEAD
}

func newSessionCodec(secret string) (*sessionCodec, error) {
	if secret == "" {
		return nil, errors.New("session encryption secret cannot be empty")
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

	return &sessionCodec{aead: aead}, nil
}

// seal serializes v to JSON and encrypts it. The returned slice is
// nonce || ciphertext.
func (c *sessionCodec) seal(v any) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts a sealed payload and unmarshals the JSON into v.
func (c *sessionCodec) open(sealed []byte, v any) error {
	if len(sealed) < c.aead.NonceSize() {
		return errors.New("sealed payload too short")
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}
