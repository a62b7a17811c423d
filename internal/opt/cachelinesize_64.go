//go:build futex_cachelinesize_64

package opt

// CacheLineSize_ is fixed to 64 bytes by the futex_cachelinesize_64 build tag.
const CacheLineSize_ = 64
