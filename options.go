package recycler

// Option configures a ScrollRect or a recycling strategy.
type Option func(*options)

// options holds all configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for options.
//
// Example:
//
//	var OptMyThing = recycler.NewOptKey("myThing", defaultValue)
//	sr := recycler.NewScrollRect(host, recycler.WithOpt(OptMyThing, value))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

var (
	OptDirection      = NewOptKey("direction", Vertical)
	OptGrid           = NewOptKey("grid", false)
	OptSegments       = NewOptKey("segments", 2)
	OptPadding        = NewOptKey("padding", Padding{})
	OptSpacing        = NewOptKey[float32]("spacing", 0)
	OptPrototype      = NewOptKey("prototype", Rect{W: 100, H: 100})
	OptSelfInitialize = NewOptKey("selfInitialize", true)
	OptBatchSize      = NewOptKey("batchSize", DefaultBatchSize)
	OptPreserveAspect = NewOptKey("preserveAspect", true)
	OptTuneThreshold  = NewOptKey("tuneThreshold", false)
	OptCellFactory    = NewOptKey[CellFactory]("cellFactory", nil)
	OptScrollbar      = NewOptKey[Scrollbar]("scrollbar", nil)
)

// WithDirection sets the scroll direction.
func WithDirection(d Direction) Option { return WithOpt(OptDirection, d) }

// Grid enables grid mode with the given number of segments (columns for
// vertical, rows for horizontal). Values below 2 are raised to 2.
func Grid(segments int) Option {
	return func(o *options) {
		WithOpt(OptGrid, true)(o)
		WithOpt(OptSegments, segments)(o)
	}
}

// WithPadding sets the content padding.
func WithPadding(p Padding) Option { return WithOpt(OptPadding, p) }

// WithSpacing sets the gap between neighbouring cells on both axes.
func WithSpacing(spacing float32) Option { return WithOpt(OptSpacing, spacing) }

// WithPrototype sets the prototype cell rectangle. Only its size is used.
func WithPrototype(r Rect) Option { return WithOpt(OptPrototype, r) }

// SelfInitialize controls whether ScrollRect.Start initializes on its own.
// When false the caller must call Initialize after assigning a data source.
func SelfInitialize(enabled bool) Option { return WithOpt(OptSelfInitialize, enabled) }

// WithBatchSize sets how many cells are instantiated per Step during
// initialization. Zero or less instantiates the whole pool in one step.
func WithBatchSize(n int) Option { return WithOpt(OptBatchSize, n) }

// PreserveAspect scales the prototype so its cross-axis extent fills one
// segment while keeping its aspect ratio. Enabled by default.
func PreserveAspect(enabled bool) Option { return WithOpt(OptPreserveAspect, enabled) }

// TuneThreshold derives the recycling distance from the viewport extent
// instead of the cell extent.
func TuneThreshold() Option { return WithOpt(OptTuneThreshold, true) }

// WithCellFactory sets the constructor for per-slot cell views.
func WithCellFactory(f CellFactory) Option { return WithOpt(OptCellFactory, f) }

// WithScrollbar attaches a scrollbar that receives normalized metrics.
func WithScrollbar(sb Scrollbar) Option { return WithOpt(OptScrollbar, sb) }

// config is the resolved, immutable view of the options a strategy needs.
type config struct {
	direction      Direction
	grid           bool
	segments       int
	padding        Padding
	spacing        float32
	prototype      Rect
	batchSize      int
	preserveAspect bool
	tuneThreshold  bool
	cellFactory    CellFactory
}

func newConfig(o options) config {
	c := config{
		direction:      GetOpt(o, OptDirection),
		grid:           GetOpt(o, OptGrid),
		segments:       1,
		padding:        GetOpt(o, OptPadding),
		spacing:        maxf(0, GetOpt(o, OptSpacing)),
		prototype:      GetOpt(o, OptPrototype),
		batchSize:      GetOpt(o, OptBatchSize),
		preserveAspect: GetOpt(o, OptPreserveAspect),
		tuneThreshold:  GetOpt(o, OptTuneThreshold),
		cellFactory:    GetOpt(o, OptCellFactory),
	}
	if c.grid {
		c.segments = max(GetOpt(o, OptSegments), 2)
	}
	return c
}
