//go:build !tinygo

package hal

// hostHeap simulates a newlib-nano malloc arena so the heap diagnostics
// have something real to walk in the simulator. The arena is built once and
// never mutated, so walks are always consistent.
type hostHeap struct {
	base   uint32
	words  []uint32
	region HeapRegion
}

func newHostHeap() *hostHeap {
	const base uint32 = 0x10000490 // a plausible end of static data
	h := &hostHeap{base: base}

	// Raw chunk sizes include the allocator's 8-byte overhead. Indexes 1
	// and 3 sit on the free list, address-ordered.
	rawSizes := []uint32{64, 136, 40, 264, 96, 32}
	freeIdx := map[int]bool{1: true, 3: true}

	end := base
	var addrs []uint32
	for _, sz := range rawSizes {
		addrs = append(addrs, end)
		end += sz
	}
	h.words = make([]uint32, (end-base)/4)
	for i, sz := range rawSizes {
		h.setWord(addrs[i], sz)
	}

	freeHead := uint32(0)
	prev := uint32(0)
	for i := range rawSizes {
		if !freeIdx[i] {
			continue
		}
		if freeHead == 0 {
			freeHead = addrs[i]
		} else {
			h.setWord(prev+4, addrs[i])
		}
		prev = addrs[i]
	}
	if prev != 0 {
		h.setWord(prev+4, 0)
	}

	h.region = HeapRegion{
		Start:    base,
		End:      end,
		FreeList: freeHead,
		Max:      base + 32*1024,
	}
	return h
}

func (h *hostHeap) setWord(addr, v uint32) {
	h.words[(addr-h.base)/4] = v
}

func (h *hostHeap) Region() (HeapRegion, bool) {
	return h.region, true
}

func (h *hostHeap) Word(addr uint32) uint32 {
	i := (addr - h.base) / 4
	if addr < h.base || int(i) >= len(h.words) {
		return 0
	}
	return h.words[i]
}
