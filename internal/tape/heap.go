// Package tape implements the abstract tape's address allocator: a
// first-fit, coalescing heap free-list; a downward-growing stack; one-shot
// globals/temps regions; and a call-frame stack with address helpers.
package tape

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// interval is a half-open [Start, Start+Len) free block.
type interval struct {
	start, length int
}

// heap is the upward-growing heap region: alloc_map and free_list partition
// [0, high) with no overlaps, the free list kept sorted and coalesced after
// every change, mirroring the original bfpp BFOutput heap fields.
type heap struct {
	high     int
	freeList []interval
	allocMap *swiss.Map[int, int] // start -> length
}

func newHeap() *heap {
	return &heap{allocMap: swiss.NewMap[int, int](16)}
}

// alloc reserves count cells, first-fit, tie-breaking on the lowest start
// address (guaranteed by keeping free_list sorted), extending the
// high-water mark when no free block fits.
func (h *heap) alloc(count int) int {
	if count <= 0 {
		return h.high
	}
	for i, blk := range h.freeList {
		if blk.length >= count {
			start := blk.start
			remaining := blk.length - count
			if remaining == 0 {
				h.freeList = append(h.freeList[:i], h.freeList[i+1:]...)
			} else {
				h.freeList[i] = interval{start: start + count, length: remaining}
			}
			h.allocMap.Put(start, count)
			return start
		}
	}
	start := h.high
	h.high += count
	h.allocMap.Put(start, count)
	return start
}

// free releases the allocation starting at addr. It reports ok=false if
// addr was never allocated (a free-of-unknown-address diagnostic
// condition).
func (h *heap) free(addr int) (ok bool) {
	length, found := h.allocMap.Get(addr)
	if !found {
		return false
	}
	h.allocMap.Delete(addr)
	h.addFreeBlock(addr, length)
	return true
}

func (h *heap) addFreeBlock(start, length int) {
	if length <= 0 {
		return
	}
	h.freeList = append(h.freeList, interval{start: start, length: length})
	slices.SortFunc(h.freeList, func(a, b interval) int { return a.start - b.start })

	merged := h.freeList[:0:0]
	for _, blk := range h.freeList {
		if len(merged) == 0 {
			merged = append(merged, blk)
			continue
		}
		back := &merged[len(merged)-1]
		backEnd := back.start + back.length
		blkEnd := blk.start + blk.length
		if blk.start <= backEnd {
			if blkEnd > backEnd {
				back.length = blkEnd - back.start
			}
		} else {
			merged = append(merged, blk)
		}
	}
	h.freeList = merged

	if n := len(h.freeList); n > 0 {
		last := h.freeList[n-1]
		if last.start+last.length == h.high {
			h.high = last.start
			h.freeList = h.freeList[:n-1]
		}
	}
}
