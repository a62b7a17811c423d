package arena

import "errors"

var (
	// ErrNoSpace indicates that no free span can hold the request.
	ErrNoSpace = errors.New("arena: no free span large enough")

	// ErrBadBlock indicates a release of a block that is not currently reserved.
	ErrBadBlock = errors.New("arena: block is not reserved")

	// ErrBadAlign indicates an alignment that is not a power of two or exceeds MaxAlign.
	ErrBadAlign = errors.New("arena: alignment must be a power of two <= MaxAlign")

	// ErrBadSize indicates a non-positive size or capacity.
	ErrBadSize = errors.New("arena: size must be positive")
)
