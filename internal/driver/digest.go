package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Digest is a SHA-256 fingerprint of the inputs of a run.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// DigestBytes hashes raw content.
func DigestBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

// Combine hashes content followed by deps. The order of deps is significant.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint identifies a run over the given input files for library.
// Empty paths are skipped; the schema version is mixed in so a format
// change never serves stale snapshots.
func Fingerprint(library string, paths ...string) (Digest, error) {
	deps := make([]Digest, 0, len(paths)+1)
	deps = append(deps, DigestBytes([]byte{byte(cacheSchemaVersion >> 8), byte(cacheSchemaVersion)}))
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return Digest{}, fmt.Errorf("failed to fingerprint %s: %w", p, err)
		}
		deps = append(deps, DigestBytes(data))
	}
	return Combine(DigestBytes([]byte(library)), deps...), nil
}
