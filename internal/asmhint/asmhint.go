// Package asmhint holds the cache-line byte width node's pad fields are
// sized against. Keeping it as a named constant rather than a literal 64
// in every pad declaration gives the layout assertions in node's tests
// and node's pad type one source of truth.
package asmhint

// CacheLineBytes is the assumed false-sharing boundary on the platforms
// this module targets (amd64, arm64, riscv64 all use 64-byte lines).
const CacheLineBytes = 64
