package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint identifies the exact content of an uploaded table. Profiling is
// deterministic, so two tables with the same fingerprint share a profile.
type Fingerprint Hash

func (f Fingerprint) String() string { return Hash(f).String() }

// ComputeFingerprint hashes column names plus every cell in row order.
// Cell values are rendered with %v so numeric and string cells with the
// same rendering collide intentionally (the profiler treats them alike).
func ComputeFingerprint(columns []string, rows []map[string]any) Fingerprint {
	var data strings.Builder
	for _, col := range columns {
		data.WriteString(col)
		data.WriteByte(0x1f)
	}
	data.WriteByte(0x1e)

	sorted := make([]string, len(columns))
	copy(sorted, columns)
	sort.Strings(sorted)

	for _, row := range rows {
		for _, col := range sorted {
			data.WriteString(fmt.Sprintf("%v", row[col]))
			data.WriteByte(0x1f)
		}
		data.WriteByte(0x1e)
	}
	return Fingerprint(NewHash([]byte(data.String())))
}
