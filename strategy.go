package recycler

import "math"

// strategy is the axis-parameterized recycling algorithm shared by
// VerticalStrategy and HorizontalStrategy.
type strategy struct {
	ax  axis
	cfg config
	ds  DataSource

	state      State
	onComplete func()

	// Layout derived at Initialize.
	cellMain  float32 // Cell extent along the scroll axis
	cellCross float32 // Cell extent along the segment axis
	viewport  float32 // Viewport main extent the pool was sized for
	threshold float32 // Distance past the viewport edge before recycling
	poolRows  int

	pool      pool
	next      int // Next slot to create/bind during initialization
	target    int // Pool size being built
	itemCount int
	first     int // Data index bound to the first cell in layout order
}

func newStrategy(ax axis, ds DataSource, cfg config) strategy {
	return strategy{ax: ax, cfg: cfg, ds: ds}
}

func (s *strategy) Direction() Direction { return s.cfg.direction }

func (s *strategy) DataSource() DataSource { return s.ds }

// SetDataSource replaces the data source. It takes effect on the next Initialize.
func (s *strategy) SetDataSource(ds DataSource) { s.ds = ds }

func (s *strategy) IsInitialized() bool { return s.state == StateReady }

func (s *strategy) IsInitializing() bool { return s.state == StateInitializing }

// Initialize derives cell and pool sizes from geo and starts building the
// pool. The returned correction moves the content start onto the viewport
// start; the pool is always laid out from index zero.
func (s *strategy) Initialize(geo Geometry, onComplete func()) Vec2 {
	if s.state == StateInitializing {
		return Vec2{}
	}

	vp := CalcBounds(geo.Viewport)
	content := CalcBounds(geo.Content)

	count := 0
	if s.ds != nil {
		count = max(s.ds.ItemCount(), 0)
	}

	prevMain, prevCross, prevRows := s.cellMain, s.cellCross, s.poolRows
	prevSegments := s.pool.segments

	s.itemCount = count
	s.viewport = s.ax.extent(vp)
	s.measureCells(vp)
	s.poolRows = s.requiredRows()

	reuse := s.pool.len() > 0 &&
		prevMain == s.cellMain && prevCross == s.cellCross &&
		prevRows == s.poolRows && prevSegments == s.cfg.segments
	if !reuse {
		s.pool = newPool(s.poolRows*s.cfg.segments, s.cfg.segments)
	}
	s.pool.resetOrder()

	s.target = s.poolRows * s.cfg.segments
	s.next = 0
	s.first = 0
	s.onComplete = onComplete
	s.state = StateInitializing

	poolLogger.Debug("pool init",
		"direction", s.cfg.direction,
		"items", count,
		"segments", s.cfg.segments,
		"cellMain", s.cellMain,
		"cellCross", s.cellCross,
		"rows", s.poolRows,
		"reuse", reuse)

	return vp.Min().Sub(content.Min())
}

// measureCells computes the cell extents from the prototype and viewport.
func (s *strategy) measureCells(vp Rect) {
	seg := float32(s.cfg.segments)
	p := s.cfg.padding
	avail := s.ax.crossExtent(vp) - s.ax.crossPadStart(p) - s.ax.crossPadEnd(p) - (seg-1)*s.cfg.spacing
	s.cellCross = maxf(0, avail/seg)

	protoMain := s.ax.extent(s.cfg.prototype)
	protoCross := s.ax.crossExtent(s.cfg.prototype)
	s.cellMain = protoMain
	if s.cfg.preserveAspect && protoCross > 0 && s.cellCross > 0 {
		s.cellMain = protoMain * s.cellCross / protoCross
	}
	s.cellMain = maxf(s.cellMain, MinCellExtent)

	if s.cfg.tuneThreshold {
		s.threshold = s.viewport * RecyclingThresholdTuningMultiplier
	} else {
		s.threshold = RecyclingThreshold * s.cellMain
	}
}

// requiredRows returns the pool size in rows along the scroll axis.
func (s *strategy) requiredRows() int {
	if s.itemCount == 0 {
		return 0
	}
	seg := s.cfg.segments
	pitch := s.cellMain + s.cfg.spacing
	coverage := int(math.Ceil(float64(s.viewport * MinPoolCoverage / s.cellMain)))
	// One row leaving and one row entering around a fully covered viewport.
	span := int(math.Ceil(float64(s.viewport/pitch))) + 2
	rows := min(max(coverage, span), s.totalRows())
	return max(rows, ceilDiv(MinPoolSize, seg))
}

// Step creates and binds up to one batch of cells. It returns true once the
// engine is ready; onComplete runs on the step that finishes the pool.
func (s *strategy) Step() bool {
	switch s.state {
	case StateReady:
		return true
	case StateIdle:
		return false
	}

	end := s.target
	if s.cfg.batchSize > 0 {
		end = min(s.next+s.cfg.batchSize, s.target)
	}
	for ; s.next < end; s.next++ {
		if s.next >= s.pool.len() {
			c := &Cell{Slot: s.next, Index: -1}
			if s.cfg.cellFactory != nil {
				c.View = s.cfg.cellFactory(s.next)
			}
			s.pool.add(c)
		}
		c := s.pool.at(s.next)
		c.Rect = s.slotRect(s.next)
		s.bind(c, s.next)
	}
	if s.next < s.target {
		return false
	}

	s.state = StateReady
	done := s.onComplete
	s.onComplete = nil
	if done != nil {
		done()
	}
	return true
}

// slotRect returns the content-local rectangle of the i-th cell in layout
// order when the pool starts at the padding edge.
func (s *strategy) slotRect(i int) Rect {
	seg := s.cfg.segments
	row, col := i/seg, i%seg
	mainPos := s.ax.padStart(s.cfg.padding) + float32(row)*s.pitch()
	crossPos := s.ax.crossPadStart(s.cfg.padding) + float32(col)*(s.cellCross+s.cfg.spacing)
	return s.ax.rect(mainPos, crossPos, s.cellMain, s.cellCross)
}

func (s *strategy) pitch() float32 { return s.cellMain + s.cfg.spacing }

func (s *strategy) totalRows() int { return ceilDiv(s.itemCount, s.cfg.segments) }

// bind binds c to index or deactivates it when index is out of range.
func (s *strategy) bind(c *Cell, index int) {
	if index < 0 || index >= s.itemCount {
		c.Index = -1
		c.Active = false
		return
	}
	c.Index = index
	c.Active = true
	if s.ds != nil {
		s.ds.SetCell(c, index)
	}
}

// OnScrollDelta recycles rows that crossed the threshold in the direction the
// content moved. Forward motion (toward later items) decreases the content
// position along the main axis.
func (s *strategy) OnScrollDelta(delta Vec2, geo Geometry) Vec2 {
	if s.state != StateReady || s.pool.len() == 0 {
		return Vec2{}
	}
	d := s.ax.main(delta)
	switch {
	case d < 0:
		return s.recycleForward(geo)
	case d > 0:
		return s.recycleBackward(geo)
	}
	return Vec2{}
}

// recycleForward moves leading rows that scrolled out before the viewport to
// the trailing end of the pool.
func (s *strategy) recycleForward(geo Geometry) Vec2 {
	vp := CalcBounds(geo.Viewport)
	origin := s.ax.start(CalcBounds(geo.Content))
	limit := s.ax.start(vp) - s.threshold
	seg := s.cfg.segments
	size := s.pool.len()

	n := 0
	for guard := s.totalRows(); guard > 0; guard-- {
		lead := s.pool.at(0)
		if origin+s.ax.end(lead.Rect) >= limit {
			break
		}
		nextIndex := s.first + size
		if nextIndex >= s.itemCount {
			break // dataset end, cells park
		}
		lastPos := s.ax.start(s.pool.at(size - 1).Rect)
		for k := 0; k < seg; k++ {
			c := s.pool.at(k)
			c.Rect = s.ax.withStart(c.Rect, lastPos+s.pitch())
			s.bind(c, nextIndex+k)
		}
		s.pool.rotateForward(seg)
		s.first += seg
		n++
	}
	if n == 0 {
		return Vec2{}
	}
	shift := float32(n) * s.pitch()
	s.shiftCells(-shift)
	if verbose() {
		poolLogger.Debug("recycled forward", "rows", n, "first", s.first)
	}
	return s.ax.vec(shift, 0)
}

// recycleBackward moves trailing rows that scrolled out past the viewport to
// the leading end of the pool.
func (s *strategy) recycleBackward(geo Geometry) Vec2 {
	vp := CalcBounds(geo.Viewport)
	origin := s.ax.start(CalcBounds(geo.Content))
	limit := s.ax.end(vp) + s.threshold
	seg := s.cfg.segments
	size := s.pool.len()

	n := 0
	for guard := s.totalRows(); guard > 0; guard-- {
		if s.first <= 0 {
			break // dataset start
		}
		tail := s.pool.at(size - seg)
		if origin+s.ax.start(tail.Rect) <= limit {
			break
		}
		firstPos := s.ax.start(s.pool.at(0).Rect)
		prevIndex := s.first - seg
		for k := 0; k < seg; k++ {
			c := s.pool.at(size - seg + k)
			c.Rect = s.ax.withStart(c.Rect, firstPos-s.pitch())
			s.bind(c, prevIndex+k)
		}
		s.pool.rotateBackward(seg)
		s.first = prevIndex
		n++
	}
	if n == 0 {
		return Vec2{}
	}
	shift := float32(n) * s.pitch()
	s.shiftCells(shift)
	if verbose() {
		poolLogger.Debug("recycled backward", "rows", n, "first", s.first)
	}
	return s.ax.vec(-shift, 0)
}

// shiftCells moves every cell along the main axis in content space.
func (s *strategy) shiftCells(d float32) {
	offset := s.ax.vec(d, 0)
	for _, c := range s.pool.cells {
		c.Rect = c.Rect.Translate(offset)
	}
}

// RecycleToCell rebinds the whole pool so index lands on the viewport start.
// When the pool would run past the dataset end it is anchored to the last
// rows instead and the content is clamped so the last row ends at the
// viewport end.
func (s *strategy) RecycleToCell(index int, geo Geometry) Vec2 {
	if s.state != StateReady || s.pool.len() == 0 || s.itemCount == 0 {
		return Vec2{}
	}
	index = clampi(index, 0, s.itemCount-1)
	seg := s.cfg.segments
	row := index / seg
	startRow := min(row, max(0, s.totalRows()-s.poolRows))

	s.first = startRow * seg
	s.pool.resetOrder()
	for i := 0; i < s.pool.len(); i++ {
		c := s.pool.at(i)
		c.Rect = s.slotRect(i)
		s.bind(c, s.first+i)
	}

	vp := CalcBounds(geo.Viewport)
	origin := s.ax.start(CalcBounds(geo.Content))
	want := s.ax.start(vp)
	if row > 0 {
		want -= s.ax.start(s.slotRect((row - startRow) * seg))
	}
	// Do not scroll past the content end.
	if extent := s.ax.main(s.ContentSize()); extent > s.ax.extent(vp) {
		want = maxf(want, s.ax.end(vp)-extent)
	} else {
		want = s.ax.start(vp)
	}

	poolLogger.Debug("recycle to cell", "index", index, "first", s.first)
	return s.ax.vec(want-origin, 0)
}

// ResetCurrentCells rebinds every active cell at its current index.
func (s *strategy) ResetCurrentCells() {
	if s.ds == nil {
		return
	}
	for _, c := range s.pool.cells {
		if c.Active {
			s.ds.SetCell(c, c.Index)
		}
	}
}

// activeCount returns the number of bound cells.
func (s *strategy) activeCount() int {
	return clampi(s.itemCount-s.first, 0, s.pool.len())
}

// ContentSize returns the extent of the instantiated, bound rows.
func (s *strategy) ContentSize() Vec2 {
	p := s.cfg.padding
	rows := ceilDiv(s.activeCount(), s.cfg.segments)
	return s.ax.vec(s.mainExtent(rows), s.crossExtent()+s.ax.crossPadStart(p)+s.ax.crossPadEnd(p))
}

// mainExtent returns the padded main-axis extent of rows laid out rows.
func (s *strategy) mainExtent(rows int) float32 {
	p := s.cfg.padding
	ext := s.ax.padStart(p) + s.ax.padEnd(p)
	if rows > 0 {
		ext += float32(rows)*s.cellMain + float32(rows-1)*s.cfg.spacing
	}
	return ext
}

func (s *strategy) crossExtent() float32 {
	seg := float32(s.cfg.segments)
	return seg*s.cellCross + (seg-1)*s.cfg.spacing
}

// VirtualContentBounds returns the screen rectangle the whole dataset would
// occupy if every item were laid out. Nothing is instantiated.
func (s *strategy) VirtualContentBounds(geo Geometry) Rect {
	content := CalcBounds(geo.Content)
	p := s.cfg.padding
	start := s.ax.start(content) - float32(s.first/s.cfg.segments)*s.pitch()
	crossExt := s.crossExtent() + s.ax.crossPadStart(p) + s.ax.crossPadEnd(p)
	return s.ax.rect(start, s.ax.crossStart(content), s.mainExtent(s.totalRows()), crossExt)
}

// NormalizedScrollPosition returns how far the viewport has travelled through
// the virtual content, 0 at the first item and 1 at the last.
func (s *strategy) NormalizedScrollPosition(geo Geometry) float32 {
	if s.itemCount == 0 {
		return 0
	}
	vp := CalcBounds(geo.Viewport)
	virtual := s.VirtualContentBounds(geo)
	scrollable := s.ax.extent(virtual) - s.ax.extent(vp)
	if scrollable <= 0 {
		return 0
	}
	travelled := s.ax.start(vp) - s.ax.start(virtual)
	return clampf(travelled/scrollable, 0, 1)
}

// minScrollbarSize keeps the reported size strictly positive.
const minScrollbarSize float32 = 1e-4

// NormalizedScrollbarSize returns the viewport to virtual content ratio.
func (s *strategy) NormalizedScrollbarSize(geo Geometry) float32 {
	if s.itemCount == 0 {
		return 1
	}
	vp := CalcBounds(geo.Viewport)
	ext := s.mainExtent(s.totalRows())
	if ext <= s.ax.extent(vp) {
		return 1
	}
	return clampf(s.ax.extent(vp)/ext, minScrollbarSize, 1)
}

// Cells returns the pool in layout order. The slice is reused between calls.
func (s *strategy) Cells() []*Cell {
	return s.pool.inOrder()
}

// Snapshot captures the computed geometry for inspection.
func (s *strategy) Snapshot(geo Geometry) Snapshot {
	vp := CalcBounds(geo.Viewport)
	content := CalcBounds(geo.Content)
	thr := s.ax.vec(s.threshold, 0)
	snap := Snapshot{
		Direction:  s.cfg.direction.String(),
		State:      s.state.String(),
		ItemCount:  s.itemCount,
		Segments:   s.cfg.segments,
		PoolSize:   s.pool.len(),
		PoolRows:   s.poolRows,
		First:      s.first,
		Active:     s.activeCount(),
		CellSize:   s.ax.vec(s.cellMain, s.cellCross),
		Threshold:  s.threshold,
		Viewport:   vp,
		Recyclable: Rect{X: vp.X - thr.X, Y: vp.Y - thr.Y, W: vp.W + 2*thr.X, H: vp.H + 2*thr.Y},
		Content:    Rect{X: content.X, Y: content.Y, W: s.ContentSize().X, H: s.ContentSize().Y},
		Virtual:    s.VirtualContentBounds(geo),
		Position:   s.NormalizedScrollPosition(geo),
		Size:       s.NormalizedScrollbarSize(geo),
	}
	for _, c := range s.pool.inOrder() {
		snap.Cells = append(snap.Cells, CellSnapshot{
			Slot:   c.Slot,
			Index:  c.Index,
			Active: c.Active,
			Rect:   c.Rect.Translate(content.Min()),
		})
	}
	return snap
}
