package report

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// Digest is a 32-byte BLAKE3 keyed hash of an input text.
type Digest [32]byte

const digestPrefix = "blake3:"

// inputDomainKey separates input digests from other uses of BLAKE3.
// It is the ASCII domain name zero-padded to 32 bytes.
var inputDomainKey = [32]byte{
	'r', 'o', 'p', 'e', 'k', 'i', 't', '.', 'r', 'e', 'p', 'o', 'r', 't', '.',
	'i', 'n', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// deriveContext is the BLAKE3 key derivation context for user key material.
const deriveContext = "ropekit 2026 report input digest"

// digestKey returns the hashing key. Empty material selects the
// built-in domain key.
func digestKey(material string) [32]byte {
	if material == "" {
		return inputDomainKey
	}
	var key [32]byte
	blake3.DeriveKey(deriveContext, []byte(material), key[:])
	return key
}

// hashSequence computes the keyed digest of the text of seq.
func hashSequence(key [32]byte, seq *rope.Sequence) Digest {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("report: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	if _, err := seq.WriteTo(hasher); err != nil {
		panic("report: hashing failed: " + err.Error())
	}
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}

// String returns the digest as "blake3:" followed by lowercase hex.
func (d Digest) String() string {
	return digestPrefix + hex.EncodeToString(d[:])
}

// Short returns the first 12 hex digits, for display.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	s, ok := strings.CutPrefix(string(text), digestPrefix)
	if !ok {
		return fmt.Errorf("digest %q: missing %q prefix", text, digestPrefix)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("digest %q: %w", text, err)
	}
	if len(raw) != len(d) {
		return fmt.Errorf("digest %q: want %d bytes, got %d", text, len(d), len(raw))
	}
	copy(d[:], raw)
	return nil
}
