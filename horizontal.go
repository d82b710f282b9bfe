package recycler

// HorizontalStrategy recycles columns of cells for a horizontally scrolling
// list or grid. In grid mode the segments are rows.
type HorizontalStrategy struct {
	strategy
}

var _ Engine = (*HorizontalStrategy)(nil)

func newHorizontal(ds DataSource, cfg config) *HorizontalStrategy {
	cfg.direction = Horizontal
	return &HorizontalStrategy{strategy: newStrategy(horizontalAxis, ds, cfg)}
}

// NewHorizontalStrategy creates a horizontal recycling engine.
func NewHorizontalStrategy(ds DataSource, opts ...Option) *HorizontalStrategy {
	return newHorizontal(ds, newConfig(applyOptions(opts)))
}

// Rows returns the number of cells per column.
func (h *HorizontalStrategy) Rows() int { return h.cfg.segments }

// CellWidth returns the derived cell width, valid once initialized.
func (h *HorizontalStrategy) CellWidth() float32 { return h.cellMain }
