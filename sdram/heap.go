// Package sdram models the shared SDRAM of a chip: a heap that hands out
// blocks carved from an akita storage, and a word view over a block.
package sdram

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// DefaultCapacity is the SDRAM size of one chip.
const DefaultCapacity = 128 * mem.MB

// Alignment of every block in bytes.
const Alignment = 4

// zeroChunk bounds the size of a single zeroing write.
const zeroChunk = 64 * mem.KB

// AllocFlag modifies how Alloc behaves.
type AllocFlag uint8

const (
	// AllocLock takes the heap lock for the duration of the allocation.
	// Callers that may race with other cores must set it.
	AllocLock AllocFlag = 1 << iota
)

var (
	// ErrOutOfMemory is returned when no free extent is large enough.
	ErrOutOfMemory = errors.New("sdram heap exhausted")

	// ErrZeroSize is returned for empty allocation requests.
	ErrZeroSize = errors.New("zero-size allocation")

	// ErrNotAllocated is returned when freeing a block the heap does not own.
	ErrNotAllocated = errors.New("block not allocated from this heap")
)

type extent struct {
	offset, size uint64
}

// Block is a region handed out by a Heap.
type Block struct {
	heap   *Heap
	offset uint64
	size   uint64
	tag    uint8
}

// Addr returns the address of the block as seen by the cores.
func (b *Block) Addr() uint64 {
	return b.heap.base + b.offset
}

// Size returns the size of the block in bytes.
func (b *Block) Size() uint64 {
	return b.size
}

// Tag returns the tag the block was allocated with.
func (b *Block) Tag() uint8 {
	return b.tag
}

// Heap returns the heap that owns the block.
func (b *Block) Heap() *Heap {
	return b.heap
}

// Heap is a first-fit allocator over a chip's SDRAM.
type Heap struct {
	mu sync.Mutex

	name    string
	base    uint64
	storage *mem.Storage

	free []extent
	used map[uint64]*Block

	// Bytes above the mark have never been handed out and are still zero.
	mark uint64
}

// HeapBuilder can build heaps.
type HeapBuilder struct {
	capacity uint64
	base     uint64
	storage  *mem.Storage
}

// WithCapacity sets the number of bytes managed by the heap.
func (b HeapBuilder) WithCapacity(capacity uint64) HeapBuilder {
	b.capacity = capacity
	return b
}

// WithBase sets the address reported for offset 0 of the heap.
func (b HeapBuilder) WithBase(base uint64) HeapBuilder {
	b.base = base
	return b
}

// WithStorage makes the heap manage an existing storage instead of creating
// its own. The capacity defaults to the storage capacity. Every block is
// zeroed on allocation since the storage may already hold data.
func (b HeapBuilder) WithStorage(storage *mem.Storage) HeapBuilder {
	b.storage = storage
	return b
}

// Build creates a heap.
func (b HeapBuilder) Build(name string) *Heap {
	if b.capacity == 0 {
		if b.storage != nil {
			b.capacity = b.storage.Capacity
		} else {
			b.capacity = DefaultCapacity
		}
	}

	// A storage handed in may hold data anywhere, so nothing is known zero.
	mark := b.capacity
	if b.storage == nil {
		b.storage = mem.NewStorage(b.capacity)
		mark = 0
	}

	if b.capacity > b.storage.Capacity {
		panic(fmt.Sprintf("heap %s: capacity %d exceeds storage capacity %d",
			name, b.capacity, b.storage.Capacity))
	}

	return &Heap{
		name:    name,
		base:    b.base,
		storage: b.storage,
		free:    []extent{{offset: 0, size: b.capacity}},
		used:    make(map[uint64]*Block),
		mark:    mark,
	}
}

// Name returns the name of the heap.
func (h *Heap) Name() string {
	return h.name
}

// Storage exposes the storage behind the heap.
func (h *Heap) Storage() *mem.Storage {
	return h.storage
}

// Alloc carves a zero-filled block of at least size bytes out of the heap.
func (h *Heap) Alloc(size uint64, tag uint8, flags AllocFlag) (*Block, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}

	if flags&AllocLock != 0 {
		h.mu.Lock()
		defer h.mu.Unlock()
	}

	size = alignUp(size)

	for i, e := range h.free {
		if e.size < size {
			continue
		}

		blk := &Block{heap: h, offset: e.offset, size: size, tag: tag}

		if e.size == size {
			h.free = append(h.free[:i], h.free[i+1:]...)
		} else {
			h.free[i] = extent{offset: e.offset + size, size: e.size - size}
		}

		h.used[blk.offset] = blk

		if err := h.zero(blk); err != nil {
			return nil, err
		}

		return blk, nil
	}

	return nil, fmt.Errorf("%w: %s cannot fit %d bytes (%d free)",
		ErrOutOfMemory, h.name, size, h.available())
}

// Free returns a block to the heap.
func (h *Heap) Free(blk *Block) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if blk == nil || blk.heap != h || h.used[blk.offset] != blk {
		return ErrNotAllocated
	}

	delete(h.used, blk.offset)

	h.free = append(h.free, extent{offset: blk.offset, size: blk.size})
	sort.Slice(h.free, func(i, j int) bool {
		return h.free[i].offset < h.free[j].offset
	})
	h.coalesce()

	return nil
}

// Available returns the number of free bytes.
func (h *Heap) Available() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.available()
}

// NumBlocks returns the number of live blocks.
func (h *Heap) NumBlocks() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.used)
}

func (h *Heap) available() uint64 {
	total := uint64(0)
	for _, e := range h.free {
		total += e.size
	}

	return total
}

func (h *Heap) coalesce() {
	merged := h.free[:0]
	for _, e := range h.free {
		n := len(merged)
		if n > 0 && merged[n-1].offset+merged[n-1].size == e.offset {
			merged[n-1].size += e.size
			continue
		}

		merged = append(merged, e)
	}

	h.free = merged
}

// zero clears the part of the block that may hold data from an earlier
// owner.
func (h *Heap) zero(blk *Block) error {
	end := blk.offset + blk.size
	dirtyEnd := min(end, h.mark)

	if end > h.mark {
		h.mark = end
	}

	if dirtyEnd <= blk.offset {
		return nil
	}

	zeros := make([]byte, min(zeroChunk, dirtyEnd-blk.offset))
	for addr := blk.offset; addr < dirtyEnd; {
		n := min(uint64(len(zeros)), dirtyEnd-addr)

		if err := h.storage.Write(addr, zeros[:n]); err != nil {
			return fmt.Errorf("heap %s: zeroing %#x: %w", h.name, addr, err)
		}

		addr += n
	}

	return nil
}

func alignUp(size uint64) uint64 {
	return (size + Alignment - 1) &^ (Alignment - 1)
}
