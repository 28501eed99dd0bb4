// Package hashutil provides content-addressed naming helpers for the
// jpegli-encode CLI, grounded on
// Seinarukiro2-tgimg-core/cli/internal/hasher's use of
// cespare/xxhash/v2 for fast, non-cryptographic content hashing.
package hashutil

import (
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the hex-encoded xxhash64 digest of data, truncated
// to length hex characters (0 or negative means no truncation).
func ContentHash(data []byte, length int) string {
	sum := xxhash.Sum64(data)
	return truncate(hex.EncodeToString(encodeUint64(sum)), length)
}

// ContentHashReader streams r through xxhash rather than buffering it,
// for large inputs.
func ContentHashReader(r io.Reader, length int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(hex.EncodeToString(encodeUint64(h.Sum64())), length), nil
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func truncate(s string, length int) string {
	if length <= 0 || length >= len(s) {
		return s
	}
	return s[:length]
}
