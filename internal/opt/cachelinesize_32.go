//go:build futex_cachelinesize_32

package opt

// CacheLineSize_ is fixed to 32 bytes by the futex_cachelinesize_32 build tag.
const CacheLineSize_ = 32
