package mem

import (
	"fmt"
	"sort"
)

// pageIndex tracks the address range of every allocated page, in address
// order. Pages start PageSize aligned, unless shortened to fit against a
// neighbor; so there may be holes between them, which read as zero.
type pageIndex struct {
	// PageSize is the length of newly allocated pages.
	PageSize uint

	// Limit bounds the addresses that may be loaded or stored; 0 means no
	// limit.
	Limit uint

	bases []uint
	sizes []uint
}

// LimitError indicates that a load or store would go past a Limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Is matches any LimitError, so that errors.Is(err, LimitError{}) finds one.
func (lim LimitError) Is(target error) bool {
	_, is := target.(LimitError)
	return is
}

func (ix *pageIndex) checkLimit(addr uint, op string) error {
	if ix.Limit != 0 && addr > ix.Limit {
		return LimitError{addr, op}
	}
	return nil
}

// findPage returns the index of the last page based at or below addr, or 0
// if there is none.
func (ix *pageIndex) findPage(addr uint) int {
	i := sort.Search(len(ix.bases), func(i int) bool { return ix.bases[i] > addr })
	if i > 0 {
		i--
	}
	return i
}

// pageFor returns the range of page i if it starts at or below addr.
// Otherwise a new page is made for addr: appended when i is past the last
// page, or inserted below page i.
func (ix *pageIndex) pageFor(i int, addr uint) (base, size uint, isNew bool) {
	aligned := addr / ix.PageSize * ix.PageSize
	switch {
	case i == len(ix.bases):
		base, size = aligned, ix.PageSize
		if n := len(ix.bases); n > 0 {
			if end := ix.bases[n-1] + ix.sizes[n-1]; base < end {
				base, size = end, size-(end-base)
			}
		}
		ix.bases = append(ix.bases, base)
		ix.sizes = append(ix.sizes, size)
		return base, size, true

	case addr < ix.bases[i]:
		base, size = aligned, ix.PageSize
		if gap := ix.bases[i] - base; size > gap {
			size = gap
		}
		ix.bases = append(ix.bases, 0)
		ix.sizes = append(ix.sizes, 0)
		copy(ix.bases[i+1:], ix.bases[i:])
		copy(ix.sizes[i+1:], ix.sizes[i:])
		ix.bases[i], ix.sizes[i] = base, size
		return base, size, true
	}
	return ix.bases[i], ix.sizes[i], false
}

// freePages forgets every page that lies wholly at or above end, returning
// how many pages remain.
func (ix *pageIndex) freePages(end uint) int {
	n := len(ix.bases)
	for n > 0 && ix.bases[n-1] >= end {
		n--
	}
	ix.bases = ix.bases[:n]
	ix.sizes = ix.sizes[:n]
	return n
}
