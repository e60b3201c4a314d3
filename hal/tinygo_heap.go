//go:build tinygo

package hal

// tinyGoHeap has nothing to walk: the runtime's allocator does not keep a
// newlib-style free list. Ports that layer a newlib-nano C allocator under
// the firmware should replace this with a real region backed by __end__,
// __malloc_free_list and the program break.
type tinyGoHeap struct{}

func (tinyGoHeap) Region() (HeapRegion, bool) { return HeapRegion{}, false }
func (tinyGoHeap) Word(uint32) uint32         { return 0 }
