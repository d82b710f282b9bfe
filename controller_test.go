package recycler_test

import (
	"testing"

	"github.com/go-theft-auto/recycler"
)

// items is a DataSource of n integers.
type items struct {
	n     int
	binds int
}

func (d *items) ItemCount() int { return d.n }

func (d *items) SetCell(cell *recycler.Cell, index int) {
	d.binds++
	cell.View = index
}

// setupScrollRect builds a 500x500 vertical list with 100px rows wired to a
// ScrollView the way an application would.
func setupScrollRect(opts ...recycler.Option) (*recycler.ScrollView, *recycler.ScrollRect, *recycler.ScrollbarState) {
	view := recycler.NewScrollView(recycler.Rect{W: 500, H: 500})
	sb := recycler.NewScrollbarState()
	base := []recycler.Option{
		recycler.WithPrototype(recycler.Rect{W: 500, H: 100}),
		recycler.WithBatchSize(0),
		recycler.WithScrollbar(sb),
	}
	sr := recycler.NewScrollRect(view, append(base, opts...)...)
	view.OnScroll(sr.OnValueChanged)
	return view, sr, sb
}

func mustValidate(t *testing.T, sr *recycler.ScrollRect) recycler.Snapshot {
	t.Helper()
	snap := sr.Snapshot()
	if err := snap.Validate(); err != nil {
		t.Fatalf("invalid pool: %v", err)
	}
	return snap
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestScrollRect_InitializeSync(t *testing.T) {
	view, sr, sb := setupScrollRect()
	called := 0
	sr.InitializeSync(&items{n: 100}, func() { called++ })

	if !sr.IsInitialized() || sr.IsInitializing() {
		t.Fatal("scroll rect should be initialized")
	}
	if called != 1 {
		t.Errorf("callback ran %d times", called)
	}
	if got := view.ContentRect(); got != (recycler.Rect{W: 500, H: 1000}) {
		t.Errorf("content rect = %+v", got)
	}
	if sb.Value != 0 || sb.Size != 0.05 {
		t.Errorf("scrollbar value %v size %v", sb.Value, sb.Size)
	}
}

func TestScrollRect_ScrollForwardRecycles(t *testing.T) {
	view, sr, _ := setupScrollRect()
	sr.InitializeSync(&items{n: 100}, nil)

	view.ScrollBy(recycler.Vec2{Y: -130})

	if got := view.ContentPosition(); got != (recycler.Vec2{Y: -30}) {
		t.Errorf("content position = %+v, want {0 -30}", got)
	}
	if snap := mustValidate(t, sr); snap.First != 1 {
		t.Errorf("first = %d, want 1", snap.First)
	}
}

func TestScrollRect_ScrollToEndAndBack(t *testing.T) {
	view, sr, sb := setupScrollRect()
	sr.InitializeSync(&items{n: 100}, nil)

	for i := 0; i < 400; i++ {
		view.ScrollBy(recycler.Vec2{Y: -45})
		mustValidate(t, sr)
	}
	snap := mustValidate(t, sr)
	if _, last := snap.BoundRange(); last != 99 {
		t.Errorf("last bound = %d, want 99", last)
	}
	if sb.Value != 1 {
		t.Errorf("scrollbar value at end = %v, want 1", sb.Value)
	}
	if got := view.ContentRect(); got.Y+got.H != 500 {
		t.Errorf("content should end at the viewport end, got %+v", got)
	}

	for i := 0; i < 400; i++ {
		view.ScrollBy(recycler.Vec2{Y: 45})
		mustValidate(t, sr)
	}
	if snap := mustValidate(t, sr); snap.First != 0 {
		t.Errorf("first = %d, want 0", snap.First)
	}
	if sb.Value != 0 {
		t.Errorf("scrollbar value at start = %v, want 0", sb.Value)
	}
	if got := view.ContentPosition(); got.Y != 0 {
		t.Errorf("content y = %v, want 0", got.Y)
	}
}

func TestScrollRect_JumpQueuedUntilReady(t *testing.T) {
	view, sr, _ := setupScrollRect(recycler.WithBatchSize(3))
	sr.Initialize(&items{n: 100}, nil)
	if !sr.IsInitializing() {
		t.Fatal("should be initializing")
	}

	done := sr.JumpToCell(50)
	if closed(done) {
		t.Fatal("jump should wait for initialization")
	}
	for !sr.Update() {
	}
	if !closed(done) {
		t.Fatal("jump should complete once ready")
	}

	snap := mustValidate(t, sr)
	if snap.First != 50 {
		t.Errorf("first = %d, want 50", snap.First)
	}
	if got := view.ContentPosition(); got.Y != 0 {
		t.Errorf("content y = %v, want 0", got.Y)
	}
}

func TestScrollRect_JumpWhenReady(t *testing.T) {
	view, sr, sb := setupScrollRect()
	sr.InitializeSync(&items{n: 100}, nil)

	if done := sr.JumpToCell(99); !closed(done) {
		t.Fatal("jump on a ready scroll rect should complete immediately")
	}
	if got := view.ContentPosition(); got.Y != -500 {
		t.Errorf("content y = %v, want -500", got.Y)
	}
	if sb.Value != 1 {
		t.Errorf("scrollbar value = %v, want 1", sb.Value)
	}
}

func TestScrollRect_ScrollToValue(t *testing.T) {
	_, sr, _ := setupScrollRect()
	sr.InitializeSync(&items{n: 101}, nil)

	sr.ScrollToValue(0.5)
	if snap := mustValidate(t, sr); snap.First != 50 {
		t.Errorf("first = %d, want 50", snap.First)
	}
}

func TestScrollRect_ReloadIgnoredWhileInitializing(t *testing.T) {
	_, sr, _ := setupScrollRect(recycler.WithBatchSize(2))
	first := &items{n: 100}

	sr.ReloadData(first, nil) // before Initialize
	if sr.Engine() != nil {
		t.Fatal("reload before initialize should be ignored")
	}

	sr.Initialize(first, nil)
	reloaded := false
	sr.ReloadData(&items{n: 3}, func() { reloaded = true })
	for !sr.Update() {
	}
	if reloaded {
		t.Error("reload during initialization should be ignored")
	}
	if sr.Engine().DataSource() != first {
		t.Error("data source should not change")
	}
}

func TestScrollRect_Reload(t *testing.T) {
	view, sr, sb := setupScrollRect()
	sr.InitializeSync(&items{n: 100}, nil)
	for i := 0; i < 20; i++ {
		view.ScrollBy(recycler.Vec2{Y: -45})
	}

	done := false
	sr.ReloadData(&items{n: 3}, func() { done = true })
	for !sr.Update() {
	}
	if !done {
		t.Fatal("reload callback did not run")
	}

	snap := mustValidate(t, sr)
	if snap.ItemCount != 3 || snap.Active != 3 || snap.First != 0 {
		t.Errorf("items %d active %d first %d", snap.ItemCount, snap.Active, snap.First)
	}
	if got := view.ContentRect(); got != (recycler.Rect{W: 500, H: 300}) {
		t.Errorf("content rect = %+v", got)
	}
	if sb.Size != 1 || sb.Visible() {
		t.Errorf("scrollbar size = %v, should be hidden", sb.Size)
	}

	// Content smaller than the viewport cannot scroll.
	view.ScrollBy(recycler.Vec2{Y: -100})
	if got := view.ContentPosition(); got.Y != 0 {
		t.Errorf("content y = %v, want 0", got.Y)
	}
}

func TestScrollRect_SelfInitialize(t *testing.T) {
	_, sr, _ := setupScrollRect(recycler.SelfInitialize(false))
	sr.SetDataSource(&items{n: 10})
	sr.Start()
	if sr.Engine() != nil {
		t.Fatal("Start should not initialize when SelfInitialize is off")
	}

	_, sr, _ = setupScrollRect()
	sr.SetDataSource(&items{n: 10})
	sr.Start()
	sr.Update()
	if !sr.IsInitialized() {
		t.Fatal("Start should initialize by default")
	}
}

func TestScrollRect_LocksAxes(t *testing.T) {
	view, sr, _ := setupScrollRect(recycler.WithDirection(recycler.Horizontal),
		recycler.WithPrototype(recycler.Rect{W: 100, H: 500}))
	sr.InitializeSync(&items{n: 100}, nil)

	view.ScrollBy(recycler.Vec2{X: -130, Y: -130})
	if got := view.ContentPosition(); got != (recycler.Vec2{X: -30}) {
		t.Errorf("content position = %+v, want {-30 0}", got)
	}
}

func TestScrollRect_ResetCurrentCells(t *testing.T) {
	_, sr, _ := setupScrollRect()
	ds := &items{n: 4}
	sr.ResetCurrentCells() // before init
	sr.InitializeSync(ds, nil)
	ds.binds = 0
	sr.ResetCurrentCells()
	if ds.binds != 4 {
		t.Errorf("rebound %d cells, want 4", ds.binds)
	}
}

func TestScrollRect_BeforeInitialize(t *testing.T) {
	_, sr, _ := setupScrollRect()
	if sr.Cells() != nil || sr.Update() || sr.IsInitialized() {
		t.Error("uninitialized scroll rect should be inert")
	}
	if snap := sr.Snapshot(); snap.State != "idle" {
		t.Errorf("state = %q", snap.State)
	}
	sr.OnValueChanged()
	sr.UpdateScrollbars()
}
