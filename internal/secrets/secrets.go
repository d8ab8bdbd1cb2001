// Package secrets encrypts sensitive settings (the market data API key)
// before they reach the settings table, using fernet tokens.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Codec encrypts and decrypts short secrets with a single fernet key.
type Codec struct {
	key *fernet.Key
}

// NewCodec creates a Codec from a base64-encoded fernet key, as
// produced by fernet key generation tooling.
func NewCodec(encodedKey string) (*Codec, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return &Codec{key: key}, nil
}

// NewEphemeralCodec creates a Codec with a freshly generated key.
// Secrets stored under it are unreadable after a restart; it is meant
// for development setups that have not configured a key.
func NewEphemeralCodec() (*Codec, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate fernet key: %w", err)
	}
	return &Codec{key: &key}, nil
}

// Encrypt seals a plaintext secret into a fernet token.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt opens a fernet token. Tokens do not expire; stored settings
// stay valid until rotated.
func (c *Codec) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: token invalid for configured key")
	}
	return string(plaintext), nil
}
