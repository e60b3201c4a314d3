// Package heapwalk inspects a newlib-nano style malloc arena without
// depending on how the arena's memory is reached. The allocator keeps the
// heap as a contiguous run of chunks, each prefixed by a 4-byte raw size
// that includes its own overhead, with freed chunks additionally threaded
// onto an address-ordered singly linked free list whose next pointer sits 4
// bytes into the chunk.
package heapwalk

// Memory is the single primitive the walk needs: read one aligned 32-bit
// word. Platform adapters decide whether that is a raw pointer dereference
// or a lookup in a simulated arena.
type Memory interface {
	Word(addr uint32) uint32
}

// Layout locates the arena.
type Layout struct {
	// HeapStart is the first byte of the heap (the end of static data).
	HeapStart uint32
	// FreeListHead is the address of the first free chunk, 0 if none.
	FreeListHead uint32
	// HeapEnd is the current program break.
	HeapEnd uint32
	// MaxAddress is the highest address the heap may ever grow to.
	MaxAddress uint32
}

// Chunk describes one allocator chunk as reported to the caller: Addr is
// the 8-aligned payload address and Size the payload size, both already
// adjusted for the allocator's bookkeeping overhead.
type Chunk struct {
	Seq  uint32
	Addr uint32
	Size uint32
	Free bool
}

const (
	chunkOverhead = 8
	sizeWordBytes = 4
)

func align8(addr uint32) uint32 {
	return (addr + 7) &^ 7
}

// Walk visits every chunk between HeapStart and HeapEnd in address order
// and returns the allocated and free payload byte totals. The free list is
// consumed in lock-step: a chunk is free exactly when it is the current
// head of the remaining free list. emit may be nil.
//
// Walk must run while the allocator is quiescent; it reads live allocator
// state and a concurrent malloc or free would tear the list under it.
func Walk(mem Memory, l Layout, emit func(Chunk)) (used, free uint32) {
	chunkCurr := l.HeapStart
	freeCurr := l.FreeListHead

	for seq := uint32(1); chunkCurr < l.HeapEnd; seq++ {
		rawSize := mem.Word(chunkCurr)
		if rawSize == 0 {
			// A zero size word would loop forever; the arena is corrupt.
			break
		}
		chunkNext := chunkCurr + rawSize

		isFree := chunkCurr == freeCurr
		if isFree {
			freeCurr = mem.Word(freeCurr + sizeWordBytes)
		}

		size := rawSize - chunkOverhead
		if emit != nil {
			emit(Chunk{
				Seq:  seq,
				Addr: align8(chunkCurr + sizeWordBytes),
				Size: size,
				Free: isFree,
			})
		}
		if isFree {
			free += size
		} else {
			used += size
		}
		chunkCurr = chunkNext
	}
	return used, free
}

// UsedSize returns the top-line heap consumption: every byte between the
// heap start and the current break, bookkeeping included. It is never
// smaller than the allocated total reported by Walk.
func (l Layout) UsedSize() uint32 {
	return l.HeapEnd - l.HeapStart
}

// UnusedSize returns how far the break may still grow.
func (l Layout) UnusedSize() uint32 {
	return l.MaxAddress - l.HeapEnd
}
