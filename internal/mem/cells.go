package mem

// DefaultCellsPageSize provides a default for Cells.PageSize.
const DefaultCellsPageSize = 256

// Cell is one primitive slot of memory.
type Cell = int64

// Cells is a paged memory of Cell values, allocated on first store; the
// zero value is empty and ready to use. Any address never stored reads as 0.
type Cells struct {
	pageIndex
	pages [][]Cell
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Cells) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
// Returns an error if addr exceeds any Limit.
func (m *Cells) Load(addr uint) (Cell, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// LoadInto reads len(buf) cells from memory starting at addr.
// Skips any unallocated pages, zeroing the result buffer where encountered.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Cells) LoadInto(addr uint, buf []Cell) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + uint(len(buf))
	if err := m.checkLimit(end, "load"); err != nil {
		return err
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		if skip := int(base) - int(addr); skip > 0 {
			if skip >= len(buf) {
				break
			}
			addr += uint(skip)
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if skip := int(addr) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += uint(n)
	}

	for i := range buf {
		buf[i] = 0
	}

	return nil
}

// Stor stores any values at addr, allocating pages if necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Cells) Stor(addr uint, values ...Cell) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + uint(len(values))
	if err := m.checkLimit(end, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultCellsPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}

	return nil
}

// Truncate releases every page that lies wholly at or above end, and zeroes
// any cells at or above end in the page that straddles it; later loads of
// released addresses read as 0, as if never stored.
func (m *Cells) Truncate(end uint) {
	n := m.freePages(end)
	for i := n; i < len(m.pages); i++ {
		m.pages[i] = nil
	}
	m.pages = m.pages[:n]
	if i := n - 1; i >= 0 {
		page := m.pages[i]
		if skip := int(end) - int(m.bases[i]); skip < len(page) {
			for j := range page[skip:] {
				page[skip+j] = 0
			}
		}
	}
}

func (m *Cells) allocPage(pageID int, addr uint) (base, size uint, page []Cell) {
	base, size, isNew := m.pageFor(pageID, addr)
	if isNew {
		page = make([]Cell, size)
		if pageID == len(m.pages) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}

// CellsDump provides data for testing.
type CellsDump struct {
	Bases []uint
	Sizes []uint
	Pages [][]Cell
}

// Dump memory data for testing.
func (m *Cells) Dump() (d CellsDump) {
	d.Bases = m.bases
	d.Sizes = m.sizes
	d.Pages = m.pages
	return d
}
