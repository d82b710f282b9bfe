package recycler

// Tunable constants shared by every recycling strategy.
const (
	// MinPoolCoverage is the multiple of the viewport extent the pool must cover
	// along the scroll axis so fast flicks do not outrun rebinding.
	MinPoolCoverage float32 = 1.5

	// MinPoolSize is the smallest number of cells a pool is created with.
	MinPoolSize = 10

	// RecyclingThreshold is the fraction of a cell's extent it must travel past
	// the viewport edge before it is recycled.
	RecyclingThreshold float32 = 0.2

	// RecyclingThresholdTuningMultiplier scales the viewport extent into the
	// recycling distance when TuneThreshold is enabled.
	RecyclingThresholdTuningMultiplier float32 = 0.2 * 111.566673 / 974.812439

	// MinCellExtent is the smallest main-axis cell extent used in layout math.
	MinCellExtent float32 = 1

	// DefaultBatchSize is the number of cells instantiated per Step.
	DefaultBatchSize = 8
)

// Direction is the scroll axis of a recycling strategy.
type Direction uint8

const (
	Vertical   Direction = iota // Items advance downward
	Horizontal                  // Items advance to the right
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// State is the initialization state of an engine.
type State uint8

const (
	StateIdle State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// DataSource supplies the item count and binds item data onto cells.
// SetCell must be deterministic for a given index while it stays bound.
// The cell pointer is only valid for the duration of the call.
type DataSource interface {
	ItemCount() int
	SetCell(cell *Cell, index int)
}

// CellFactory creates the view object stored in a pool slot.
type CellFactory func(slot int) any

// Cell is one reusable pool slot.
type Cell struct {
	Slot   int  // Position in the pool, stable for the life of the pool
	Index  int  // Bound data index, -1 when unbound
	Rect   Rect // Content-local layout rectangle
	Active bool // False for slots past the end of the dataset
	View   any  // User view created by the CellFactory
}

// Geometry is an immutable snapshot of the host's viewport and content
// corners in screen space, taken at the time of a call.
type Geometry struct {
	Viewport Corners
	Content  Corners
}

// GeometryFromRects builds a Geometry from axis-aligned rectangles.
func GeometryFromRects(viewport, content Rect) Geometry {
	return Geometry{Viewport: viewport.Corners(), Content: content.Corners()}
}

// Engine is the recycling contract. VerticalStrategy and HorizontalStrategy
// are its only implementations.
//
// An engine is not safe for concurrent use and is not reentrant: no method may
// be called from inside a DataSource.SetCell callback.
type Engine interface {
	// Initialize starts (re)building the pool and returns the correction that
	// moves the content start onto the viewport start. It is a no-op while an
	// initialization is in flight. onComplete runs once, when Step finishes.
	Initialize(geo Geometry, onComplete func()) Vec2
	// Step performs one cooperative slice of initialization and reports
	// whether the engine is ready.
	Step() bool
	IsInitialized() bool
	IsInitializing() bool

	// OnScrollDelta processes the content displacement since the previous
	// notification and returns the correction to add to the content position.
	OnScrollDelta(delta Vec2, geo Geometry) Vec2
	// RecycleToCell rebinds the pool so index is the first visible item and
	// returns the correction to add to the content position.
	RecycleToCell(index int, geo Geometry) Vec2
	// ResetCurrentCells rebinds every active cell at its current index.
	ResetCurrentCells()

	NormalizedScrollPosition(geo Geometry) float32
	NormalizedScrollbarSize(geo Geometry) float32
	VirtualContentBounds(geo Geometry) Rect
	ContentSize() Vec2

	Cells() []*Cell
	Direction() Direction
	DataSource() DataSource
	SetDataSource(ds DataSource)
	Snapshot(geo Geometry) Snapshot
}

// NewEngine constructs the strategy for the configured direction.
func NewEngine(ds DataSource, opts ...Option) Engine {
	cfg := newConfig(applyOptions(opts))
	if cfg.direction == Horizontal {
		return newHorizontal(ds, cfg)
	}
	return newVertical(ds, cfg)
}
