//go:build futex_cachelinesize_256

package opt

// CacheLineSize_ is fixed to 256 bytes by the futex_cachelinesize_256 build tag.
const CacheLineSize_ = 256
