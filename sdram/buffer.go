package sdram

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// WordSize is the size of a buffer word in bytes.
const WordSize = 4

// ErrOutOfBounds is returned for accesses past the end of a buffer.
var ErrOutOfBounds = errors.New("buffer access out of bounds")

// Buffer is a flat sequence of 32-bit words stored little-endian in a block.
type Buffer struct {
	block *Block
	words int
}

// NewBuffer views a block as words. Trailing bytes that do not form a whole
// word are not addressable.
func NewBuffer(blk *Block) *Buffer {
	return &Buffer{
		block: blk,
		words: int(blk.size / WordSize),
	}
}

// Len returns the number of words in the buffer.
func (b *Buffer) Len() int {
	return b.words
}

// Block returns the block behind the buffer.
func (b *Buffer) Block() *Block {
	return b.block
}

// WriteWords stores src starting at word index.
func (b *Buffer) WriteWords(index int, src []uint32) error {
	if err := b.check(index, len(src)); err != nil {
		return err
	}

	data := make([]byte, len(src)*WordSize)
	for i, w := range src {
		binary.LittleEndian.PutUint32(data[i*WordSize:], w)
	}

	return b.block.heap.storage.Write(b.addr(index), data)
}

// ReadWords loads len(dst) words starting at word index.
func (b *Buffer) ReadWords(index int, dst []uint32) error {
	if err := b.check(index, len(dst)); err != nil {
		return err
	}

	data, err := b.block.heap.storage.Read(
		b.addr(index), uint64(len(dst)*WordSize))
	if err != nil {
		return err
	}

	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(data[i*WordSize:])
	}

	return nil
}

// Word returns a single word.
func (b *Buffer) Word(index int) (uint32, error) {
	w := make([]uint32, 1)
	if err := b.ReadWords(index, w); err != nil {
		return 0, err
	}

	return w[0], nil
}

// SetWord stores a single word.
func (b *Buffer) SetWord(index int, value uint32) error {
	return b.WriteWords(index, []uint32{value})
}

func (b *Buffer) addr(index int) uint64 {
	return b.block.offset + uint64(index)*WordSize
}

func (b *Buffer) check(index, n int) error {
	if index < 0 || n < 0 || index+n > b.words {
		return fmt.Errorf("%w: words [%d, %d) of %d",
			ErrOutOfBounds, index, index+n, b.words)
	}

	return nil
}
