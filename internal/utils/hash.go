// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Fingerprint returns the hex-encoded SHA-256 digest of s.
//
// It is used wherever a token must be referenced without revealing it, such
// as cache keys.
//
// Example usage:
//
//	key := "token:" + utils.Fingerprint(rawToken)
func Fingerprint(s string) string {
	return hex.EncodeToString(Hash([]byte(s)))
}

// Hash computes a SHA-256 digest over data using a hasher pulled from the
// pool.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}
