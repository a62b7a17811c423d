//go:build futex_cachelinesize_128

package opt

// CacheLineSize_ is fixed to 128 bytes by the futex_cachelinesize_128 build tag.
const CacheLineSize_ = 128
