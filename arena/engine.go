package arena

import (
	"slices"
)

// MaxAlign is the largest alignment Reserve accepts. The slab itself is
// aligned to it, so offsets aligned within the slab are aligned in memory.
const MaxAlign = 4096

// Block is a reserved region of an arena's slab.
type Block struct {
	Off  int // offset from the start of the slab
	Size int // requested size in bytes
}

// Engine carves blocks out of a fixed-size slab. Engines are not safe for
// concurrent use; Arena brackets every call with its mutex.
type Engine interface {
	// Reserve returns a block of size bytes whose offset is a multiple of align.
	Reserve(size, align int) (Block, error)
	// Release returns a block obtained from Reserve.
	Release(b Block) error
	// Capacity is the slab size the engine manages.
	Capacity() int
}

// span is a free range [off, off+size).
type span struct {
	off, size int
}

// FirstFit is an Engine keeping an address-ordered free list. Reserve
// takes the first span that fits after alignment padding; Release merges
// the freed range with adjacent free spans.
type FirstFit struct {
	capacity int
	free     []span      // sorted by off, never adjacent
	used     map[int]int // off -> size of reserved blocks
}

// NewFirstFit creates a FirstFit engine managing capacity bytes.
func NewFirstFit(capacity int) (*FirstFit, error) {
	if capacity <= 0 {
		return nil, ErrBadSize
	}
	return &FirstFit{
		capacity: capacity,
		free:     []span{{off: 0, size: capacity}},
		used:     make(map[int]int),
	}, nil
}

// Capacity implements Engine.
func (f *FirstFit) Capacity() int { return f.capacity }

// Reserve implements Engine.
func (f *FirstFit) Reserve(size, align int) (Block, error) {
	if size <= 0 {
		return Block{}, ErrBadSize
	}
	if !validAlign(align) {
		return Block{}, ErrBadAlign
	}
	for i, s := range f.free {
		start := alignUp(s.off, align)
		end := start + size
		if end > s.off+s.size {
			continue
		}

		// Split s into the padding before start and the tail after end.
		var pieces []span
		if start > s.off {
			pieces = append(pieces, span{off: s.off, size: start - s.off})
		}
		if tail := s.off + s.size - end; tail > 0 {
			pieces = append(pieces, span{off: end, size: tail})
		}
		f.free = slices.Replace(f.free, i, i+1, pieces...)
		f.used[start] = size
		return Block{Off: start, Size: size}, nil
	}
	return Block{}, ErrNoSpace
}

// Release implements Engine.
func (f *FirstFit) Release(b Block) error {
	if size, ok := f.used[b.Off]; !ok || size != b.Size {
		return ErrBadBlock
	}
	delete(f.used, b.Off)

	i, _ := slices.BinarySearchFunc(f.free, b.Off, func(s span, off int) int {
		return s.off - off
	})
	f.free = slices.Insert(f.free, i, span{off: b.Off, size: b.Size})

	// Merge with the right neighbour, then the left one.
	if i+1 < len(f.free) && f.free[i].off+f.free[i].size == f.free[i+1].off {
		f.free[i].size += f.free[i+1].size
		f.free = slices.Delete(f.free, i+1, i+2)
	}
	if i > 0 && f.free[i-1].off+f.free[i-1].size == f.free[i].off {
		f.free[i-1].size += f.free[i].size
		f.free = slices.Delete(f.free, i, i+1)
	}
	return nil
}

// FreeBytes sums the free list.
func (f *FirstFit) FreeBytes() int {
	var n int
	for _, s := range f.free {
		n += s.size
	}
	return n
}

// FreeSpans is the number of disjoint free ranges.
func (f *FirstFit) FreeSpans() int { return len(f.free) }

func validAlign(align int) bool {
	return align > 0 && align <= MaxAlign && align&(align-1) == 0
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
