package signing

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// PasswordField is the name the shared secret takes in the signing input.
// It is never sent over the wire.
const PasswordField = "Password"

// TokenField is the request field carrying the computed token.
const TokenField = "Token"

// HashFunc digests the canonical string and returns it hex encoded.
type HashFunc func(data []byte) string

func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type Signer struct {
	hash HashFunc
}

type Option func(*Signer)

func WithHash(hash HashFunc) Option {
	return func(s *Signer) {
		if hash != nil {
			s.hash = hash
		}
	}
}

func NewSigner(opts ...Option) *Signer {
	s := &Signer{hash: SHA256Hex}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSigner = NewSigner()

// Token signs fields with the default SHA-256 signer.
func Token(fields Fields, secret string) string {
	return defaultSigner.Token(fields, secret)
}

// Canonical builds the string that gets hashed: the values of fields plus the
// password, ordered by field name and joined without a separator.
func (s *Signer) Canonical(fields Fields, secret string) string {
	names := make([]string, 0, len(fields)+1)
	for name := range fields {
		if name != PasswordField {
			names = append(names, name)
		}
	}
	names = append(names, PasswordField)
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		if name == PasswordField {
			b.WriteString(secret)
			continue
		}
		b.WriteString(fields[name])
	}
	return b.String()
}

func (s *Signer) Token(fields Fields, secret string) string {
	return s.hash([]byte(s.Canonical(fields, secret)))
}

// Verify recomputes the token for fields and compares it to token in
// constant time.
func (s *Signer) Verify(fields Fields, secret, token string) bool {
	expected := s.Token(fields, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
