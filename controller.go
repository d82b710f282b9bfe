package recycler

// Host is the scroll container a ScrollRect drives. It owns the physical
// content position; the recycler only reads geometry and adds corrections.
type Host interface {
	// Viewport returns the screen corners of the visible window.
	Viewport() Corners
	// Content returns the screen corners of the content rectangle.
	Content() Corners
	// ContentPosition returns the tracked content position.
	ContentPosition() Vec2
	// OffsetContent adds d to the content position and to any drag start
	// position the host keeps, without notifying scroll listeners.
	OffsetContent(d Vec2)
	SetContentSize(size Vec2)
	// LockAxes enables scrolling on exactly the axes passed as true.
	LockAxes(vertical, horizontal bool)
	// StopMovement cancels any in-flight drag or animation.
	StopMovement()
}

// Scrollbar receives normalized scroll metrics.
type Scrollbar interface {
	SetValue(v float32) // Position in [0,1]
	SetSize(s float32)  // Thumb size in (0,1]
}

// ScrollRect owns one recycling engine and forwards host scroll
// notifications to it.
//
// Usage:
//
//	view := recycler.NewScrollView(recycler.Rect{X: 0, Y: 0, W: 400, H: 600})
//	sr := recycler.NewScrollRect(view, recycler.WithPrototype(recycler.Rect{W: 400, H: 48}))
//	view.OnScroll(sr.OnValueChanged)
//	sr.Initialize(items, nil)
//	for frame := range frames {
//	    view.HandleInput(input)
//	    sr.Update()
//	}
type ScrollRect struct {
	host      Host
	opts      []Option
	cfg       config
	scrollbar Scrollbar
	selfInit  bool

	ds          DataSource
	engine      Engine
	prevPos     Vec2
	listening   bool // False while (re)initializing
	initRunning bool

	pendingJumps []pendingJump
}

type pendingJump struct {
	index int
	done  chan struct{}
}

// NewScrollRect creates a controller for host. The host's orthogonal axis is
// locked immediately; the configured direction is applied on Initialize.
func NewScrollRect(host Host, opts ...Option) *ScrollRect {
	o := applyOptions(opts)
	sr := &ScrollRect{
		host:      host,
		opts:      opts,
		cfg:       newConfig(o),
		scrollbar: GetOpt(o, OptScrollbar),
		selfInit:  GetOpt(o, OptSelfInitialize),
	}
	host.LockAxes(true, false)
	return sr
}

// SetDataSource assigns the data source used by Start and ReloadData.
func (sr *ScrollRect) SetDataSource(ds DataSource) {
	sr.ds = ds
}

// Start initializes with the assigned data source when SelfInitialize is
// enabled (the default). It is a no-op otherwise.
func (sr *ScrollRect) Start() {
	if !sr.selfInit {
		return
	}
	sr.initialize(nil)
}

// Initialize assigns ds and starts building the pool. The pool is built
// incrementally by Update; use InitializeSync to build it at once.
// Calling Initialize while initialized or initializing is a no-op.
func (sr *ScrollRect) Initialize(ds DataSource, onInitialized func()) {
	sr.ds = ds
	sr.initialize(onInitialized)
}

// InitializeSync is Initialize followed by stepping until ready.
func (sr *ScrollRect) InitializeSync(ds DataSource, onInitialized func()) {
	sr.Initialize(ds, onInitialized)
	sr.finishInit()
}

func (sr *ScrollRect) initialize(onInitialized func()) {
	if sr.engine != nil || sr.initRunning {
		return
	}
	sr.engine = NewEngine(sr.ds, sr.opts...)
	vertical := sr.cfg.direction == Vertical
	sr.host.LockAxes(vertical, !vertical)

	sr.listening = false
	sr.initRunning = true
	sr.host.OffsetContent(sr.engine.Initialize(sr.geometry(), func() {
		sr.host.SetContentSize(sr.engine.ContentSize())
		sr.listening = true
		sr.initRunning = false
		sr.prevPos = sr.host.ContentPosition()
		sr.UpdateScrollbars()
		sr.flushJumps()
		if onInitialized != nil {
			onInitialized()
		}
	}))
	sr.prevPos = sr.host.ContentPosition()
	scrollLogger.Debug("scroll rect initializing", "direction", sr.cfg.direction)
}

// Update advances an in-flight initialization by one step. Call it once per
// frame. It returns true when the engine is ready.
func (sr *ScrollRect) Update() bool {
	if sr.engine == nil {
		return false
	}
	return sr.engine.Step()
}

// finishInit steps the engine until it is ready.
func (sr *ScrollRect) finishInit() {
	if sr.engine == nil {
		return
	}
	for !sr.engine.Step() {
	}
}

// IsInitialized reports whether the engine finished initializing.
func (sr *ScrollRect) IsInitialized() bool {
	return sr.engine != nil && sr.engine.IsInitialized()
}

// IsInitializing reports whether an initialization or reload is in flight.
func (sr *ScrollRect) IsInitializing() bool {
	return sr.initRunning
}

// Engine returns the active engine, or nil before Initialize.
func (sr *ScrollRect) Engine() Engine {
	return sr.engine
}

// Cells returns the pool in layout order, or nil before Initialize.
func (sr *ScrollRect) Cells() []*Cell {
	if sr.engine == nil {
		return nil
	}
	return sr.engine.Cells()
}

// OnValueChanged is the host's scroll-position listener. It forwards the
// displacement since the previous call and applies the engine correction.
func (sr *ScrollRect) OnValueChanged() {
	if !sr.listening || sr.engine == nil {
		return
	}
	pos := sr.host.ContentPosition()
	delta := pos.Sub(sr.prevPos)
	corr := sr.engine.OnScrollDelta(delta, sr.geometry())
	if !corr.IsZero() {
		sr.host.OffsetContent(corr)
		sr.host.SetContentSize(sr.engine.ContentSize())
	}
	sr.prevPos = sr.host.ContentPosition()
	sr.UpdateScrollbars()
}

// JumpToCell recycles the pool so index is the first visible item. When the
// engine is still initializing the jump is queued and applied once it is
// ready. The returned channel is closed after the jump was applied.
func (sr *ScrollRect) JumpToCell(index int) <-chan struct{} {
	done := make(chan struct{})
	if !sr.IsInitialized() {
		sr.pendingJumps = append(sr.pendingJumps, pendingJump{index: index, done: done})
		return done
	}
	sr.jump(index)
	close(done)
	return done
}

// ScrollToValue jumps to the item at normalized position v, as reported by
// a scrollbar track click.
func (sr *ScrollRect) ScrollToValue(v float32) <-chan struct{} {
	count := 0
	if sr.ds != nil {
		count = sr.ds.ItemCount()
	}
	index := int(clampf(v, 0, 1)*float32(max(count-1, 0)) + 0.5)
	return sr.JumpToCell(index)
}

func (sr *ScrollRect) jump(index int) {
	sr.host.StopMovement()
	sr.host.OffsetContent(sr.engine.RecycleToCell(index, sr.geometry()))
	sr.host.SetContentSize(sr.engine.ContentSize())
	sr.prevPos = sr.host.ContentPosition()
	sr.UpdateScrollbars()
}

func (sr *ScrollRect) flushJumps() {
	jumps := sr.pendingJumps
	sr.pendingJumps = nil
	for _, j := range jumps {
		sr.jump(j.index)
		close(j.done)
	}
}

// ResetCurrentCells rebinds every visible cell without moving it.
func (sr *ScrollRect) ResetCurrentCells() {
	if !sr.IsInitialized() {
		return
	}
	sr.engine.ResetCurrentCells()
}

// ReloadData swaps in ds and rebuilds the pool from index zero. It is
// ignored before the first initialization completes and while a reload is
// in flight; check IsInitialized first. A nil ds keeps the current source.
func (sr *ScrollRect) ReloadData(ds DataSource, onReloaded func()) {
	if !sr.IsInitialized() || sr.initRunning {
		scrollLogger.Debug("reload ignored", "initialized", sr.IsInitialized(), "initializing", sr.initRunning)
		return
	}
	if ds != nil {
		sr.ds = ds
	}
	sr.host.StopMovement()
	sr.listening = false
	sr.initRunning = true
	sr.engine.SetDataSource(sr.ds)
	sr.host.OffsetContent(sr.engine.Initialize(sr.geometry(), func() {
		sr.host.SetContentSize(sr.engine.ContentSize())
		sr.listening = true
		sr.initRunning = false
		sr.prevPos = sr.host.ContentPosition()
		sr.UpdateScrollbars()
		sr.flushJumps()
		if onReloaded != nil {
			onReloaded()
		}
	}))
	sr.prevPos = sr.host.ContentPosition()
}

// UpdateScrollbars pushes the normalized metrics to the attached scrollbar.
func (sr *ScrollRect) UpdateScrollbars() {
	if sr.engine == nil || sr.scrollbar == nil {
		return
	}
	geo := sr.geometry()
	sr.scrollbar.SetValue(sr.engine.NormalizedScrollPosition(geo))
	sr.scrollbar.SetSize(sr.engine.NormalizedScrollbarSize(geo))
}

// Snapshot captures the engine state for the current host geometry.
func (sr *ScrollRect) Snapshot() Snapshot {
	if sr.engine == nil {
		return Snapshot{State: StateIdle.String()}
	}
	return sr.engine.Snapshot(sr.geometry())
}

func (sr *ScrollRect) geometry() Geometry {
	return Geometry{Viewport: sr.host.Viewport(), Content: sr.host.Content()}
}
