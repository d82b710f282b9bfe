package recycler

// VerticalStrategy recycles rows of cells for a vertically scrolling list or
// grid. In grid mode the segments are columns.
type VerticalStrategy struct {
	strategy
}

var _ Engine = (*VerticalStrategy)(nil)

func newVertical(ds DataSource, cfg config) *VerticalStrategy {
	cfg.direction = Vertical
	return &VerticalStrategy{strategy: newStrategy(verticalAxis, ds, cfg)}
}

// NewVerticalStrategy creates a vertical recycling engine.
func NewVerticalStrategy(ds DataSource, opts ...Option) *VerticalStrategy {
	return newVertical(ds, newConfig(applyOptions(opts)))
}

// Columns returns the number of cells per row.
func (v *VerticalStrategy) Columns() int { return v.cfg.segments }

// CellHeight returns the derived cell height, valid once initialized.
func (v *VerticalStrategy) CellHeight() float32 { return v.cellMain }
