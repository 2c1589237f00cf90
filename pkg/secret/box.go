// Package secret encrypts credentials stored at rest, such as per-channel API keys.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrDecrypt = errors.New("secret: message authentication failed")

type Box struct {
	key [32]byte
}

// NewBox derives a 32 byte key from passphrase.
func NewBox(passphrase string) (*Box, error) {
	if passphrase == "" {
		return nil, errors.New("secret: empty passphrase")
	}
	return &Box{key: sha256.Sum256([]byte(passphrase))}, nil
}

func (b *Box) Encrypt(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("secret: read nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (b *Box) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("secret: decode: %w", err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
