package recycler

// pool is a ring of cells kept in layout order. Moving a row from one end to
// the other only shifts the ring head; no cell is ever reallocated.
type pool struct {
	cells    []*Cell
	head     int
	segments int
	ordered  []*Cell // scratch for Cells()
}

func newPool(size, segments int) pool {
	return pool{
		cells:    make([]*Cell, 0, size),
		segments: max(segments, 1),
		ordered:  make([]*Cell, 0, size),
	}
}

func (p *pool) len() int { return len(p.cells) }

func (p *pool) rows() int { return ceilDiv(len(p.cells), p.segments) }

// at returns the i-th cell in layout order.
func (p *pool) at(i int) *Cell {
	return p.cells[(p.head+i)%len(p.cells)]
}

// add appends a freshly created slot at the end of the layout order.
// Only valid while head is zero, i.e. during initialization.
func (p *pool) add(c *Cell) {
	p.cells = append(p.cells, c)
}

// rotateForward makes the first n cells the last n.
func (p *pool) rotateForward(n int) {
	if len(p.cells) == 0 {
		return
	}
	p.head = (p.head + n) % len(p.cells)
}

// rotateBackward makes the last n cells the first n.
func (p *pool) rotateBackward(n int) {
	if len(p.cells) == 0 {
		return
	}
	p.head = ((p.head-n)%len(p.cells) + len(p.cells)) % len(p.cells)
}

// resetOrder restores slot order so at(i) is the slot i.
func (p *pool) resetOrder() {
	p.head = 0
}

// inOrder returns the cells in layout order. The slice is reused between
// calls and must not be retained.
func (p *pool) inOrder() []*Cell {
	p.ordered = p.ordered[:0]
	for i := range p.cells {
		p.ordered = append(p.ordered, p.at(i))
	}
	return p.ordered
}
