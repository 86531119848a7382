// Package llmcache caches LLM responses keyed by a fingerprint of the exact
// request. Identical requests hit the cache instead of the provider, and
// concurrent identical requests are collapsed into a single provider call.
package llmcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives a stable cache key from a prompt template identity and
// its substituted variables. The same template, version and variables always
// produce the same fingerprint; any difference in any of them produces a
// different one. Variables are serialized in sorted key order so map
// iteration order cannot leak into the key.
func Fingerprint(templateID, version string, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(templateID)
	b.WriteByte(0)
	b.WriteString(version)
	for _, k := range keys {
		b.WriteByte(0)
		b.WriteString(k)
		b.WriteByte(0)
		b.WriteString(vars[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
