package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 120000
	DefaultSaltSize   = 16
	DefaultKeyLen     = 32
)

// Hasher derives password credentials with PBKDF2-HMAC-SHA256.
// Stored form is "hex(salt):hex(digest)".
type Hasher struct {
	Iterations int
	SaltSize   int
	KeyLen     int
}

func DefaultHasher() *Hasher {
	return NewHasher(DefaultIterations)
}

func NewHasher(iterations int) *Hasher {
	return &Hasher{
		Iterations: iterations,
		SaltSize:   DefaultSaltSize,
		KeyLen:     DefaultKeyLen,
	}
}

func GenerateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	salt, err := GenerateSalt(h.SaltSize)
	if err != nil {
		return "", err
	}
	digest := h.derive(password, salt)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(digest), nil
}

// Verify reports whether password matches the stored credential.
// Malformed credentials never verify.
func (h *Hasher) Verify(password, stored string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, ":")
	if !ok || saltHex == "" || digestHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) != h.KeyLen {
		return false
	}
	got := h.derive(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *Hasher) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.Iterations, h.KeyLen, sha256.New)
}
