package recycler

import "testing"

// fakeSource records every bind.
type fakeSource struct {
	n     int
	binds []int
}

func (f *fakeSource) ItemCount() int { return f.n }

func (f *fakeSource) SetCell(cell *Cell, index int) {
	f.binds = append(f.binds, index)
	cell.View = index
}

// harness drives an engine the way a host does: it owns the content rect,
// applies displacements and adds the returned corrections.
type harness struct {
	t        *testing.T
	engine   Engine
	viewport Rect
	content  Rect
}

func newHarness(t *testing.T, viewport Rect, ds DataSource, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		engine:   NewEngine(ds, append([]Option{WithBatchSize(0)}, opts...)...),
		viewport: viewport,
		content:  Rect{X: viewport.X, Y: viewport.Y},
	}
	h.content = h.content.Translate(h.engine.Initialize(h.geo(), nil))
	if !h.engine.Step() {
		t.Fatal("engine should be ready after one unbatched step")
	}
	h.resize()
	return h
}

func (h *harness) geo() Geometry { return GeometryFromRects(h.viewport, h.content) }

func (h *harness) resize() {
	size := h.engine.ContentSize()
	h.content.W, h.content.H = size.X, size.Y
}

// scroll moves the content by d and applies the engine correction.
func (h *harness) scroll(d Vec2) Vec2 {
	h.content = h.content.Translate(d)
	corr := h.engine.OnScrollDelta(d, h.geo())
	h.content = h.content.Translate(corr)
	h.resize()
	h.validate()
	return corr
}

func (h *harness) validate() Snapshot {
	h.t.Helper()
	snap := h.engine.Snapshot(h.geo())
	if err := snap.Validate(); err != nil {
		h.t.Fatalf("invalid pool: %v", err)
	}
	return snap
}

// screenPos maps each bound index to its screen position along the main axis.
func (h *harness) screenPos() map[int]float32 {
	ax := verticalAxis
	if h.engine.Direction() == Horizontal {
		ax = horizontalAxis
	}
	out := make(map[int]float32)
	for _, c := range h.engine.Cells() {
		if c.Active {
			out[c.Index] = ax.start(c.Rect.Translate(h.content.Min()))
		}
	}
	return out
}

var listViewport = Rect{W: 500, H: 500}

func listOpts() []Option {
	return []Option{WithPrototype(Rect{W: 500, H: 100})}
}

func TestRequiredRows(t *testing.T) {
	tests := []struct {
		name     string
		viewport Rect
		proto    Rect
		items    int
		opts     []Option
		want     int
	}{
		{"minimum pool", Rect{W: 500, H: 500}, Rect{W: 500, H: 100}, 100, nil, 10},
		{"coverage", Rect{W: 100, H: 1000}, Rect{W: 100, H: 50}, 1000, nil, 30},
		{"few items keep minimum", Rect{W: 500, H: 500}, Rect{W: 500, H: 100}, 5, nil, 10},
		{"no items", Rect{W: 500, H: 500}, Rect{W: 500, H: 100}, 0, nil, 0},
		{"grid coverage", Rect{W: 400, H: 500}, Rect{W: 100, H: 100}, 97, []Option{Grid(4)}, 8},
		{"grid small dataset", Rect{W: 400, H: 500}, Rect{W: 100, H: 100}, 6, []Option{Grid(4)}, 3},
		{"coverage ignores spacing", Rect{W: 500, H: 500}, Rect{W: 500, H: 40}, 1000, []Option{WithSpacing(10)}, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithPrototype(tt.proto), PreserveAspect(false)}, tt.opts...)
			e := NewEngine(&fakeSource{n: tt.items}, opts...).(*VerticalStrategy)
			e.Initialize(GeometryFromRects(tt.viewport, Rect{}), nil)
			if e.poolRows != tt.want {
				t.Errorf("pool rows = %d, want %d", e.poolRows, tt.want)
			}
			floor := ceilDiv(MinPoolSize, e.cfg.segments)
			if tt.items > 0 && e.poolRows < floor {
				t.Errorf("pool rows %d below minimum %d", e.poolRows, floor)
			}
		})
	}
}

func TestInitialize_LaysOutFromIndexZero(t *testing.T) {
	ds := &fakeSource{n: 100}
	h := newHarness(t, listViewport, ds, listOpts()...)

	cells := h.engine.Cells()
	if len(cells) != 10 {
		t.Fatalf("pool size = %d, want 10", len(cells))
	}
	for i, c := range cells {
		if c.Index != i || !c.Active {
			t.Errorf("cell %d bound to %d (active %v)", i, c.Index, c.Active)
		}
		if c.Rect != (Rect{Y: float32(i) * 100, W: 500, H: 100}) {
			t.Errorf("cell %d rect = %+v", i, c.Rect)
		}
	}
	if got := h.engine.ContentSize(); got != (Vec2{X: 500, Y: 1000}) {
		t.Errorf("content size = %+v", got)
	}
	if len(ds.binds) != 10 {
		t.Errorf("SetCell called %d times, want 10", len(ds.binds))
	}
}

func TestInitialize_ReturnsCorrectionToViewportStart(t *testing.T) {
	e := NewEngine(&fakeSource{n: 50}, listOpts()...)
	geo := GeometryFromRects(Rect{X: 10, Y: 20, W: 500, H: 500}, Rect{X: 10, Y: -380, W: 500, H: 1000})
	if got := e.Initialize(geo, nil); got != (Vec2{Y: 400}) {
		t.Errorf("correction = %+v, want {0 400}", got)
	}
}

func TestOnScrollDelta_Forward(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)

	corr := h.scroll(Vec2{Y: -130})
	if corr != (Vec2{Y: 100}) {
		t.Fatalf("correction = %+v, want {0 100}", corr)
	}
	cells := h.engine.Cells()
	last := cells[len(cells)-1]
	if last.Slot != 0 || last.Index != 10 {
		t.Errorf("first slot should be rebound to index 10 at the end, got slot %d index %d", last.Slot, last.Index)
	}
	if h.content.Y != -30 {
		t.Errorf("content y = %v, want -30", h.content.Y)
	}
	if pos := h.screenPos()[1]; pos != -30 {
		t.Errorf("index 1 at %v, want -30", pos)
	}
}

func TestOnScrollDelta_WithinThresholdDoesNotRecycle(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)

	// Cell 0 ends 10px above the viewport, inside the 20px threshold.
	if corr := h.scroll(Vec2{Y: -110}); !corr.IsZero() {
		t.Errorf("correction = %+v, want zero", corr)
	}
	if first, _ := h.validate().BoundRange(); first != 0 {
		t.Errorf("first bound = %d, want 0", first)
	}
}

func TestOnScrollDelta_Backward(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)
	h.scroll(Vec2{Y: -130})

	corr := h.scroll(Vec2{Y: 60})
	if corr != (Vec2{Y: -100}) {
		t.Fatalf("correction = %+v, want {0 -100}", corr)
	}
	snap := h.validate()
	if snap.First != 0 {
		t.Errorf("first = %d, want 0", snap.First)
	}
	if pos := h.screenPos()[1]; pos != 30 {
		t.Errorf("index 1 at %v, want 30", pos)
	}
}

func TestOnScrollDelta_NoRecycleWhenDatasetFitsPool(t *testing.T) {
	ds := &fakeSource{n: 5}
	h := newHarness(t, listViewport, ds, listOpts()...)

	snap := h.validate()
	if snap.PoolSize != 10 || snap.Active != 5 {
		t.Fatalf("pool %d active %d, want 10 and 5", snap.PoolSize, snap.Active)
	}
	for _, c := range h.engine.Cells()[5:] {
		if c.Active || c.Index != -1 {
			t.Errorf("slot %d should be inactive, got index %d", c.Slot, c.Index)
		}
	}
	binds := len(ds.binds)
	for i := 0; i < 20; i++ {
		if corr := h.scroll(Vec2{Y: -25}); !corr.IsZero() {
			t.Fatalf("step %d: unexpected correction %+v", i, corr)
		}
	}
	if len(ds.binds) != binds {
		t.Errorf("scrolling rebound %d cells", len(ds.binds)-binds)
	}
}

func TestOnScrollDelta_ComposesAcrossChunks(t *testing.T) {
	whole := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)
	chunked := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)

	whole.scroll(Vec2{Y: -370})
	for _, d := range []float32{-100, -100, -170} {
		chunked.scroll(Vec2{Y: d})
	}

	a, b := whole.screenPos(), chunked.screenPos()
	if len(a) != len(b) {
		t.Fatalf("bound %d vs %d cells", len(a), len(b))
	}
	for index, pos := range a {
		if b[index] != pos {
			t.Errorf("index %d at %v after one delta, %v after three", index, pos, b[index])
		}
	}
}

func TestOnScrollDelta_LargeJumpRecyclesManyRows(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)

	// A flick far past the pool must still leave the viewport covered.
	h.scroll(Vec2{Y: -2500})
	pos := h.screenPos()
	for y := float32(0); y < 500; y += 100 {
		covered := false
		for _, p := range pos {
			if p <= y && p+100 > y {
				covered = true
			}
		}
		if !covered {
			t.Errorf("viewport y=%v not covered by any bound cell", y)
		}
	}
}

func TestOnScrollDelta_ZeroDeltaIsNoop(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)
	before := h.validate()
	if corr := h.scroll(Vec2{}); !corr.IsZero() {
		t.Errorf("correction = %+v", corr)
	}
	if after := h.validate(); after.First != before.First {
		t.Errorf("first changed from %d to %d", before.First, after.First)
	}
}

func TestGrid_LastRowPartiallyActive(t *testing.T) {
	h := newHarness(t, Rect{W: 400, H: 500}, &fakeSource{n: 97},
		WithPrototype(Rect{W: 100, H: 100}), Grid(4))

	corr := h.engine.RecycleToCell(96, h.geo())
	h.content = h.content.Translate(corr)
	h.resize()
	snap := h.validate()

	if snap.PoolSize != 32 {
		t.Fatalf("pool size = %d, want 32", snap.PoolSize)
	}
	if first, last := snap.BoundRange(); first != 68 || last != 96 {
		t.Errorf("bound range %d..%d, want 68..96", first, last)
	}
	lastRow := h.engine.Cells()[28:]
	if !lastRow[0].Active || lastRow[0].Index != 96 {
		t.Errorf("last row first cell = %d (active %v), want 96", lastRow[0].Index, lastRow[0].Active)
	}
	for _, c := range lastRow[1:] {
		if c.Active {
			t.Errorf("slot %d should be inactive in the last row", c.Slot)
		}
	}

	virtual := h.engine.VirtualContentBounds(h.geo())
	if virtual.H != 2500 || virtual.W != 400 {
		t.Errorf("virtual bounds = %+v, want 400x2500", virtual)
	}
	// Last row ends at the viewport end.
	if end := h.content.Y + 800; end != 500 {
		t.Errorf("content ends at %v, want 500", end)
	}
	if p := h.engine.NormalizedScrollPosition(h.geo()); p != 1 {
		t.Errorf("position = %v, want 1", p)
	}
	if s := h.engine.NormalizedScrollbarSize(h.geo()); s != 0.2 {
		t.Errorf("size = %v, want 0.2", s)
	}
}

func TestGrid_SegmentsClampedToTwo(t *testing.T) {
	e := NewVerticalStrategy(&fakeSource{n: 10}, Grid(1))
	if e.Columns() != 2 {
		t.Errorf("columns = %d, want 2", e.Columns())
	}
	h := NewHorizontalStrategy(&fakeSource{n: 10}, Grid(3))
	if h.Rows() != 3 {
		t.Errorf("rows = %d, want 3", h.Rows())
	}
}

func TestHorizontal_MirrorsVertical(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100},
		WithDirection(Horizontal), WithPrototype(Rect{W: 100, H: 500}))

	cells := h.engine.Cells()
	if got := cells[3].Rect; got != (Rect{X: 300, W: 100, H: 500}) {
		t.Errorf("cell 3 rect = %+v", got)
	}
	if corr := h.scroll(Vec2{X: -130}); corr != (Vec2{X: 100}) {
		t.Errorf("correction = %+v, want {100 0}", corr)
	}
	if pos := h.screenPos()[1]; pos != -30 {
		t.Errorf("index 1 at x=%v, want -30", pos)
	}
	// Vertical motion is ignored by a horizontal engine.
	if corr := h.scroll(Vec2{Y: -1000}); !corr.IsZero() {
		t.Errorf("vertical delta produced correction %+v", corr)
	}
}

func TestPaddingAndSpacing(t *testing.T) {
	e := NewVerticalStrategy(&fakeSource{n: 20},
		WithPrototype(Rect{W: 500, H: 100}),
		WithPadding(Padding{Top: 10, Bottom: 6, Left: 5, Right: 5}),
		WithSpacing(4),
		WithBatchSize(0))
	e.Initialize(GeometryFromRects(listViewport, Rect{}), nil)
	e.Step()

	if e.CellHeight() != 98 {
		t.Fatalf("cell height = %v, want 98", e.CellHeight())
	}
	cells := e.Cells()
	if cells[0].Rect != (Rect{X: 5, Y: 10, W: 490, H: 98}) {
		t.Errorf("cell 0 = %+v", cells[0].Rect)
	}
	if cells[1].Rect.Y != 10+98+4 {
		t.Errorf("cell 1 y = %v", cells[1].Rect.Y)
	}
	rows := float32(e.poolRows)
	want := Vec2{X: 500, Y: 10 + 6 + rows*98 + (rows-1)*4}
	if got := e.ContentSize(); got != want {
		t.Errorf("content size = %+v, want %+v", got, want)
	}
}

func TestMinCellExtent(t *testing.T) {
	e := NewVerticalStrategy(&fakeSource{n: 10}, WithPrototype(Rect{W: 100}), WithBatchSize(0))
	e.Initialize(GeometryFromRects(listViewport, Rect{}), nil)
	if e.CellHeight() != MinCellExtent {
		t.Errorf("cell height = %v, want %v", e.CellHeight(), MinCellExtent)
	}
}

func TestTuneThreshold(t *testing.T) {
	e := NewVerticalStrategy(&fakeSource{n: 10}, WithPrototype(Rect{W: 500, H: 100}), TuneThreshold())
	e.Initialize(GeometryFromRects(listViewport, Rect{}), nil)
	want := 500 * RecyclingThresholdTuningMultiplier
	if d := e.threshold - want; d > 1e-4 || d < -1e-4 {
		t.Errorf("threshold = %v, want %v", e.threshold, want)
	}
}

func TestStep_CooperativeBatches(t *testing.T) {
	e := NewEngine(&fakeSource{n: 100}, WithPrototype(Rect{W: 500, H: 100}), WithBatchSize(3))
	if e.Step() {
		t.Fatal("idle engine should not report ready")
	}

	completed := 0
	e.Initialize(GeometryFromRects(listViewport, Rect{}), func() { completed++ })
	if !e.IsInitializing() || e.IsInitialized() {
		t.Fatal("engine should be initializing")
	}
	// Initialize is ignored while in flight.
	e.Initialize(GeometryFromRects(listViewport, Rect{}), func() { completed += 100 })

	steps := 0
	for !e.Step() {
		steps++
		if got := len(e.Cells()); got != steps*3 {
			t.Fatalf("after %d steps pool has %d cells, want %d", steps, got, steps*3)
		}
		if completed != 0 {
			t.Fatal("onComplete ran before the pool was finished")
		}
	}
	if steps != 3 {
		t.Errorf("took %d incomplete steps, want 3", steps)
	}
	if completed != 1 {
		t.Errorf("onComplete ran %d times, want 1", completed)
	}
	if !e.IsInitialized() {
		t.Error("engine should be ready")
	}
	e.Step()
	if completed != 1 {
		t.Error("onComplete must run once")
	}
}

func TestOperationsBeforeReadyAreNoops(t *testing.T) {
	e := NewEngine(&fakeSource{n: 100}, listOpts()...)
	geo := GeometryFromRects(listViewport, Rect{Y: -300, W: 500, H: 1000})
	if corr := e.OnScrollDelta(Vec2{Y: -300}, geo); !corr.IsZero() {
		t.Errorf("OnScrollDelta before init = %+v", corr)
	}
	if corr := e.RecycleToCell(50, geo); !corr.IsZero() {
		t.Errorf("RecycleToCell before init = %+v", corr)
	}
}

func TestRecycleToCell(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantFirst int
		wantY     float32 // Screen y of the target index
	}{
		{"middle", 50, 50, 0},
		{"start", 0, 0, 0},
		{"negative clamps", -5, 0, 0},
		{"near end anchors pool", 97, 90, 200},
		{"past end clamps", 1000, 90, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)
			h.scroll(Vec2{Y: -130})

			h.content = h.content.Translate(h.engine.RecycleToCell(tt.index, h.geo()))
			h.resize()
			snap := h.validate()
			if snap.First != tt.wantFirst {
				t.Errorf("first = %d, want %d", snap.First, tt.wantFirst)
			}
			target := clampi(tt.index, 0, 99)
			if pos, ok := h.screenPos()[target]; !ok || pos != tt.wantY {
				t.Errorf("index %d at %v (bound %v), want %v", target, pos, ok, tt.wantY)
			}
		})
	}
}

func TestResetCurrentCells(t *testing.T) {
	ds := &fakeSource{n: 7}
	h := newHarness(t, listViewport, ds, listOpts()...)
	ds.binds = nil
	h.engine.ResetCurrentCells()
	if len(ds.binds) != 7 {
		t.Errorf("rebound %d cells, want 7", len(ds.binds))
	}
	for i, index := range ds.binds {
		if index != i {
			t.Errorf("bind %d = %d", i, index)
		}
	}
}

func TestReinitialize_ReusesPool(t *testing.T) {
	var created int
	factory := WithCellFactory(func(slot int) any { created++; return slot })
	h := newHarness(t, listViewport, &fakeSource{n: 100}, append(listOpts(), factory)...)
	h.scroll(Vec2{Y: -450})

	h.engine.SetDataSource(&fakeSource{n: 3})
	h.content = h.content.Translate(h.engine.Initialize(h.geo(), nil))
	h.engine.Step()
	h.resize()

	if created != 10 {
		t.Errorf("factory ran %d times, want 10", created)
	}
	snap := h.validate()
	if snap.First != 0 || snap.Active != 3 || snap.PoolSize != 10 {
		t.Errorf("first %d active %d pool %d", snap.First, snap.Active, snap.PoolSize)
	}
	if h.content.Y != 0 {
		t.Errorf("content y = %v, want 0", h.content.Y)
	}
}

func TestEmptyDataset(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{}, listOpts()...)
	if n := len(h.engine.Cells()); n != 0 {
		t.Errorf("pool size = %d, want 0", n)
	}
	if s := h.engine.NormalizedScrollbarSize(h.geo()); s != 1 {
		t.Errorf("size = %v, want 1", s)
	}
	if p := h.engine.NormalizedScrollPosition(h.geo()); p != 0 {
		t.Errorf("position = %v, want 0", p)
	}
	if corr := h.engine.RecycleToCell(3, h.geo()); !corr.IsZero() {
		t.Errorf("RecycleToCell = %+v", corr)
	}
	if corr := h.scroll(Vec2{Y: -100}); !corr.IsZero() {
		t.Errorf("OnScrollDelta = %+v", corr)
	}
}

func TestNilDataSource(t *testing.T) {
	e := NewEngine(nil, listOpts()...)
	e.Initialize(GeometryFromRects(listViewport, Rect{}), nil)
	if !e.Step() {
		t.Fatal("engine with nil data source should finish immediately")
	}
	e.ResetCurrentCells()
}

func TestScrollMetricsStayInBounds(t *testing.T) {
	h := newHarness(t, listViewport, &fakeSource{n: 100}, listOpts()...)
	for i := 0; i < 300; i++ {
		d := float32(-37)
		if i >= 200 {
			d = 61
		}
		h.scroll(Vec2{Y: d})
		p := h.engine.NormalizedScrollPosition(h.geo())
		s := h.engine.NormalizedScrollbarSize(h.geo())
		if p < 0 || p > 1 {
			t.Fatalf("step %d: position %v out of [0,1]", i, p)
		}
		if s <= 0 || s > 1 {
			t.Fatalf("step %d: size %v out of (0,1]", i, s)
		}
	}
}
